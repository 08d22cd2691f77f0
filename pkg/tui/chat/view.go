package chat

import "fmt"

func (m chatModel) View() string {
	errLine := ""
	if m.err != nil {
		errLine = "\n" + m.styles.ErrorMessage.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return fmt.Sprintf(
		"%s\n%s\n%s%s",
		m.viewport.View(),
		m.renderStatusLine(),
		m.textarea.View(),
		errLine,
	)
}
