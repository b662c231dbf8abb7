package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravitywell/internal/level"
	"github.com/san-kum/gravitywell/internal/sim"
	"github.com/san-kum/gravitywell/internal/storage"
	"github.com/san-kum/gravitywell/internal/viz"
)

// playLevel runs the terminal game, moving on to the next level each time
// the player accepts the level-complete prompt. Progress is saved after
// every level.
func playLevel(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	l, err := levelArg(reg, args)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	for {
		w, err := l.NewWorld(settings.Params(), sim.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		if resume {
			snap, ok, err := st.LoadProgress(l.ID)
			if err != nil {
				return err
			}
			if ok {
				if err := w.Restore(snap); err != nil {
					return err
				}
			}
		}

		model, err := viz.NewModel(w, l, settings, theme)
		if err != nil {
			return err
		}
		final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		if err := st.SaveProgress(w.Snapshot()); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}

		fm, ok := final.(viz.Model)
		if !ok || !fm.Advanced() {
			return nil
		}
		if l.ID+1 >= settings.TotalLevels {
			fmt.Println("all levels complete")
			return nil
		}
		next, err := reg.Get(l.ID + 1)
		if errors.Is(err, level.ErrUnknownLevel) {
			fmt.Println("all levels complete")
			return nil
		}
		if err != nil {
			return err
		}
		l = next
	}
}
