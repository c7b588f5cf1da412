package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/blackarck/werename/pkg/rename"
)

// EditorLauncher handles all editor-related operations
type EditorLauncher struct {
	DefaultEditor string
}

// NewEditorLauncher creates a new editor launcher. command wins over
// $EDITOR, which wins over vi.
func NewEditorLauncher(command string) *EditorLauncher {
	editor := command
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	return &EditorLauncher{
		DefaultEditor: editor,
	}
}

// OpenFile opens a file in the configured editor
func (e *EditorLauncher) OpenFile(filepath string) error {
	parts := strings.Fields(e.DefaultEditor)

	var editorCmd *exec.Cmd
	if len(parts) > 1 {
		editorCmd = exec.Command(parts[0], append(parts[1:], filepath)...)
	} else {
		editorCmd = exec.Command(e.DefaultEditor, filepath)
	}

	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	if err := editorCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}

// EditText writes content to a temp file, opens it in the editor and
// returns what the user saved. The file is removed afterwards.
func (e *EditorLauncher) EditText(pattern, content string) (string, error) {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmpFile.Name()
	defer os.Remove(path)

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := e.OpenFile(path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return NormalizeNewlines(string(data)), nil
}

// NormalizeNewlines turns CRLF line endings into LF so editors on any
// platform produce one entry per line.
func NormalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Confirm asks question on out and reads the answer from in. Empty input
// or EOF counts as Cancel. Pass a *bufio.Reader to ask more than once on
// the same input.
func Confirm(in io.Reader, out io.Writer, question string) (rename.Decision, error) {
	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	for {
		fmt.Fprintf(out, "%s [y]es/[n]o/[c]ancel: ", question)
		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return rename.Yes, nil
		case "n", "no":
			return rename.No, nil
		case "c", "cancel", "":
			if err != nil && err != io.EOF {
				return rename.Cancel, fmt.Errorf("failed to read answer: %w", err)
			}
			return rename.Cancel, nil
		}
		if err != nil {
			if err == io.EOF {
				return rename.Cancel, nil
			}
			return rename.Cancel, fmt.Errorf("failed to read answer: %w", err)
		}
		fmt.Fprintf(out, "Please answer y, n or c.\n")
	}
}
