package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EnvEditor prepares an external editor command using $EDITOR (fallback: "vi").
// It does NOT run the editor itself; callers hand the returned *exec.Cmd to
// tea.ExecProcess so Bubble Tea releases the terminal while it runs.
type EnvEditor struct{}

// NewEnvEditor creates an EnvEditor.
func NewEnvEditor() *EnvEditor {
	return &EnvEditor{}
}

const instructionComment = `<!--
TerminalFeed: edit your comment below.

- SAVE and EXIT to keep the draft (e.g., :wq in vi).
- The draft is not posted until you press ctrl+d.
- Everything above the closing marker is ignored.
%s-->

`

// Cmd writes draft to a temp file under an instruction header and returns
// the editor command for it. replyTo, when set, is named in the header.
func (e *EnvEditor) Cmd(draft, replyTo string) (*exec.Cmd, string, error) {
	// $EDITOR may carry flags, e.g. "code --wait".
	fields := strings.Fields(os.Getenv("EDITOR"))
	if len(fields) == 0 {
		fields = []string{"vi"}
	}

	tmpFile, err := os.CreateTemp("", "terminalfeed-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer tmpFile.Close()

	header := ""
	if replyTo != "" {
		header = "\nReplying to " + replyTo + "\n"
	}
	if _, err := tmpFile.WriteString(fmt.Sprintf(instructionComment, header) + draft); err != nil {
		os.Remove(tmpPath)
		return nil, "", fmt.Errorf("writing to temp file: %w", err)
	}

	args := append(fields[1:], tmpPath)
	return exec.Command(fields[0], args...), tmpPath, nil
}

// ReadContent reads the temp file, strips the instruction header, trims
// whitespace and removes the file.
func (e *EnvEditor) ReadContent(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading temp file: %w", err)
	}

	content := string(data)
	if idx := strings.Index(content, "-->"); idx != -1 {
		content = content[idx+3:]
	}
	return strings.TrimSpace(content), nil
}
