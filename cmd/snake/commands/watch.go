package commands

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	termbox "github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridsnake/engine/rules"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "watch a session running on another terminal over its api",
	Run: func(*cobra.Command, []string) {
		if err := watchGame(); err != nil {
			log.WithError(err).Fatal("watch failed")
		}
	},
}

func watchGame() error {
	u := url.URL{
		Scheme: "ws",
		Host:   strings.Replace(apiAddr, "http://", "", 1),
		Path:   "/socket",
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return errors.Wrapf(err, "unable to connect to %s", u.String())
	}
	defer conn.Close()

	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "unable to initialize terminal")
	}
	defer termbox.Close()

	frames := make(chan *rules.Snapshot)
	go func() {
		defer close(frames)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				if !strings.Contains(err.Error(), "close 1000 (normal)") {
					log.WithError(err).Debug("socket read ended")
				}
				return
			}
			snap := &rules.Snapshot{}
			if err := json.Unmarshal(message, snap); err != nil {
				log.WithError(err).Warn("unable to decode frame")
				continue
			}
			frames <- snap
		}
	}()

	events := setupEventQueue()
	for {
		select {
		case snap, ok := <-frames:
			if !ok {
				return nil
			}
			if err := render(snap); err != nil {
				return err
			}
		case ev := <-events:
			if ev.Type == termbox.EventKey &&
				(ev.Key == termbox.KeyEsc || ev.Ch == 'q') {
				return nil
			}
		}
	}
}
