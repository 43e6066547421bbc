package main

import (
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gopick/internal/tui"
)

func main() {
	tileZoom := flag.Int("z", 4, "tiling zoom level for loaded point data")
	flag.Parse()

	if os.Getenv("GOPICK_DEBUG") != "" {
		f, err := tea.LogToFile("gopick.log", "gopick")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(flag.Arg(0), *tileZoom)
	} else {
		m = tui.New(*tileZoom)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
