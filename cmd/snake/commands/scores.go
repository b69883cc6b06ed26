package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridsnake/engine/rules"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "print the stored high scores and progress",
	Run: func(*cobra.Command, []string) {
		if err := printScores(); err != nil {
			log.WithError(err).Fatal("scores failed")
		}
	},
}

type scoresPayload struct {
	HighScores     map[rules.Mode]int `json:"highScores"`
	UnlockedLevels int                `json:"unlockedLevels"`
}

func printScores() error {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(fmt.Sprintf("%s/scores", apiAddr))
	if err != nil {
		return errors.Wrap(err, "unable to reach the api")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("api returned %s", resp.Status)
	}

	var payload scoresPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return errors.Wrap(err, "unable to decode response")
	}

	for _, mode := range []rules.Mode{rules.ModeEndless, rules.ModeLevels, rules.ModeTime} {
		fmt.Printf("%-8s %d\n", mode, payload.HighScores[mode])
	}
	fmt.Printf("unlocked levels: %d\n", payload.UnlockedLevels)
	return nil
}
