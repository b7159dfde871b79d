// Interactive terminal client for the blackjack table server. Connects
// over TCP, renders broadcast events by prefix and forwards typed
// commands (hit, stand, ping, quit) as protocol lines.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

func main() {
	addr := flag.String("addr", "localhost:5555", "server address")
	flag.Parse()

	name, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Your name").
		Show()
	if err != nil {
		pterm.Error.Printfln("reading name: %v", err)
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		pterm.Error.Printfln("connecting to %s: %v", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", strings.TrimSpace(name)); err != nil {
		pterm.Error.Printfln("sending name: %v", err)
		os.Exit(1)
	}
	pterm.Success.Printfln("Connected to %s", *addr)
	pterm.Info.Println("Commands: hit, stand, ping, quit")

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			printEvent(scanner.Text())
		}
	}()

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		line := strings.TrimSpace(stdin.Text())
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			pterm.Error.Printfln("send failed: %v", err)
			return
		}
		if strings.EqualFold(line, "quit") {
			<-done
			return
		}
	}
}

func printEvent(line string) {
	switch {
	case strings.HasPrefix(line, "EVENT:"):
		pterm.FgGreen.Println(line)
	case strings.HasPrefix(line, "GAME_COUNTDOWN"):
		pterm.FgLightYellow.Println(line)
	case strings.HasPrefix(line, "GAME_START"), strings.HasPrefix(line, "ROUND_"):
		pterm.FgLightMagenta.Println(line)
	case strings.HasPrefix(line, "STATE:"):
		pterm.FgCyan.Println(line)
	case strings.HasPrefix(line, "TURN:"):
		pterm.FgYellow.Println(line)
	case strings.HasPrefix(line, "ACTION:"):
		pterm.FgLightCyan.Println(line)
	case strings.HasPrefix(line, "RESULT"):
		pterm.FgLightGreen.Println(line)
	default:
		pterm.FgDefault.Println(line)
	}
}
