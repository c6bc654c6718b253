package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/driftwm/drift/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved input configuration",
	Long: `Show the input device options drift resolved from its configuration
file, including defaults for options the file does not set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := config.Get().Input

		headerStyle := lipgloss.NewStyle().Bold(true)
		t := table.New().
			Border(lipgloss.NormalBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers("OPTION", "VALUE").
			Row("mouse_cursor_speed", strconv.FormatFloat(in.MouseCursorSpeed, 'g', -1, 64)).
			Row("touchpad_cursor_speed", strconv.FormatFloat(in.TouchpadCursorSpeed, 'g', -1, 64)).
			Row("tap_to_click", strconv.FormatBool(in.TapToClick)).
			Row("click_method", in.ClickMethod).
			Row("scroll_method", in.ScrollMethod).
			Row("disable_while_typing", strconv.FormatBool(in.DisableWhileTyping)).
			Row("disable_touchpad_while_mouse", strconv.FormatBool(in.DisableTouchpadWhileMouse)).
			Row("natural_scroll", strconv.FormatBool(in.NaturalScroll))

		fmt.Println(t.Render())
		fmt.Printf("config file: %s\n", config.GetConfigPath())
		return nil
	},
}
