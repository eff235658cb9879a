package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"chessbot/internal/config"
	"chessbot/internal/logging"
	"chessbot/internal/notify"
	"chessbot/internal/rules"
	"chessbot/internal/session"
	"chessbot/internal/storage"
)

// consoleGroups stands in for the chat transport's group creation. Real
// deployments plug a messaging backend in here.
type consoleGroups struct{}

func (consoleGroups) CreateGroup(name string, members []string) (string, error) {
	id := uuid.NewString()
	log.Printf("created group %q (%s) for %s", name, id, strings.Join(members, ", "))
	return id, nil
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	cfg := config.Load()
	logging.Debug = *debug || cfg.Debug

	log.Printf("chessbot %s (%s)", commit, buildDate)

	db, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	coord := session.NewCoordinator(storage.NewStore(db), consoleGroups{})
	notifier := notify.New(nil, cfg.CommandPrefix)

	repl(coord, notifier)
}

// repl reads inbound events from stdin, one per line, and prints the
// rendered replies. It tracks the last game group a reply went to so that
// move/surrender/new/repeat commands have a chat to refer to.
func repl(coord *session.Coordinator, notifier *notify.Notifier) {
	fmt.Println("commands: play <sender> <target> | move <sender> <text> | surrender <sender> | new <sender> | repeat | quit")

	ctx := context.Background()
	chat := ""
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var report *session.Report
		var err error
		switch cmd := fields[0]; {
		case cmd == "quit":
			return
		case cmd == "play" && len(fields) == 3:
			report, err = coord.Invite(ctx, fields[1], fields[2])
		case cmd == "move" && len(fields) >= 3:
			report, err = coord.HandleText(ctx, fields[1], chat, strings.Join(fields[2:], " "))
		case cmd == "surrender" && len(fields) == 2:
			report, err = coord.Surrender(ctx, fields[1], chat)
		case cmd == "new" && len(fields) == 2:
			report, err = coord.NewGame(ctx, fields[1], chat)
		case cmd == "repeat" && len(fields) == 1:
			report, err = coord.Repeat(ctx, chat)
		default:
			fmt.Println("unrecognized command")
			continue
		}

		if err != nil {
			logging.Errorf("%v", err)
			continue
		}
		if report == nil {
			logging.Debugf("input dropped")
			continue
		}
		if report.ChatID != "" {
			chat = report.ChatID
		}

		msg, err := notifier.Render(report)
		if err != nil {
			logging.Errorf("render reply: %v", err)
			continue
		}
		fmt.Printf("[%s]\n%s\n", msg.ChatID, msg.Text)
		if msg.HTML != "" && report.Board != nil {
			fmt.Println(textBoard(report))
		}
	}
}

// textBoard prints the board with Unicode pieces for the console, standing
// in for the HTML board a chat client would display.
func textBoard(report *session.Report) string {
	grid := report.Board.Grid()
	var sb strings.Builder
	for _, rank := range grid {
		for _, cell := range rank {
			glyph := cell
			if g, ok := rules.Pieces[cell]; ok {
				glyph = g
			}
			sb.WriteString(glyph)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
