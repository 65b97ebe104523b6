// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// released under the ISC license

package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strconv"

	docopt "github.com/docopt/docopt-go"
	"github.com/google/uuid"
	"golang.org/x/term"
	"pkt.systems/psi"
	"pkt.systems/pslog"

	"github.com/ergochat/mudconsole/ansi"
	"github.com/ergochat/mudconsole/config"
	"github.com/ergochat/mudconsole/console"
	"github.com/ergochat/mudconsole/lib"
	"github.com/ergochat/mudconsole/logx"
	"github.com/ergochat/mudconsole/tui"
)

const usage = `mudconsole.
mudconsole is a terminal client for MUDs. It connects to a game server, shows
everything the server sends in a scrolling pane and sends each line you type
back to the server.

Without <host> and <port> the address comes from the config file, or from the
MUDCONSOLE_ADDRESS and MUDCONSOLE_PORT environment variables. A host of the
form ws://... or wss://... connects over a WebSocket instead of raw TCP, and
the port is ignored.

Usage:
	mudconsole [<host> <port>] [options]
	mudconsole --write-config=<file>
	mudconsole -h | --help
	mudconsole --version

Options:
	--config=<file>           Read settings from this YAML file.
	--name=<name>             Name of the MUD, shown as the title.
	--tls                     Connect using TLS.
	--tls-noverify            Don't verify the provided TLS certificates.
	--origin=<url>            Origin header sent on WebSocket connections.
	--transcript=<file>       Append everything shown to this file.
	--max-transcript=<bytes>  Bytes of scrollback kept in memory (0 is unlimited).
	--no-tui                  Use a plain line console instead of the full screen UI.
	--no-readline             Don't use line editing in the plain console.
	--history=<file>          Line editing history file.
	--no-color                Strip color codes from server output.
	--log-file=<file>         Write diagnostic logs to this file.
	--log-level=<level>       One of trace, debug, info, warn, error.
	-h --help                 Show this screen.
	--version                 Show version.`

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	arguments, _ := docopt.Parse(usage, nil, true, lib.SemVer, false)

	if path, ok := arguments["--write-config"].(string); ok {
		written, err := config.WriteDefault(path)
		if err != nil {
			fmt.Println("** mudconsole could not write config:", err.Error())
			return 1
		}
		fmt.Println("** mudconsole wrote default config to", written)
		return 0
	}

	overrides, err := overridesFromArguments(arguments)
	if err != nil {
		fmt.Println("** mudconsole:", err.Error())
		return 1
	}
	configPath, _ := arguments["--config"].(string)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Println("** mudconsole could not load config:", err.Error())
		return 1
	}
	cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		fmt.Println("** mudconsole config is invalid:", err.Error())
		return 1
	}

	log, logCloser, err := logx.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Println("** mudconsole could not open log:", err.Error())
		return 1
	}
	defer logCloser.Close()
	log = logx.WithMud(logx.WithSession(log, uuid.NewString()), cfg.MudName, cfg.RemoteAddress())
	ctx = pslog.ContextWithLogger(ctx, log)

	if err := run(ctx, cfg); err != nil {
		log.Error("mudconsole exited", "err", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config) error {
	log := pslog.Ctx(ctx)

	ansi.EnableANSI()
	level := lib.DetectColorLevel()
	if cfg.Console.NoColor {
		level = lib.ColorLevelNone
	}

	connectionConfig := lib.ConnectionConfig{
		Host:          cfg.Address,
		Port:          cfg.Port,
		TLS:           cfg.TLS || cfg.TLSNoVerify,
		Origin:        cfg.Origin,
		ReadChunkSize: cfg.ReadChunkSize,
		SendTimeout:   cfg.SendTimeout,
	}
	if cfg.TLSNoVerify {
		connectionConfig.TLSConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	fmt.Printf("** mudconsole connecting to %s at %s\n", cfg.MudName, cfg.RemoteAddress())
	connection, err := lib.NewConnection(connectionConfig)
	if err != nil {
		fmt.Println("** mudconsole could not connect:", err.Error())
		return err
	}

	transcript := lib.NewTranscript(lib.TranscriptOptions{
		MaxBytes:       cfg.Transcript.MaxBytes,
		ScrollDuration: cfg.ScrollDuration,
	})
	if cfg.Transcript.LogFile != "" {
		transcriptLog, err := lib.OpenTranscriptLog(cfg.Transcript.LogFile)
		if err != nil {
			connection.Disconnect()
			fmt.Println("** mudconsole could not open transcript:", err.Error())
			return err
		}
		defer func() {
			if err := transcriptLog.Err(); err != nil {
				log.Error("transcript write failed", "file", cfg.Transcript.LogFile, "err", err)
			}
			transcriptLog.Close()
		}()
		defer transcript.Subscribe(transcriptLog)()
	}

	session := lib.NewSession(connection, transcript, lib.SessionOptions{
		PollInterval: cfg.PollInterval,
		PollTimeout:  cfg.PollTimeout,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go session.Run(runCtx)

	useTUI := cfg.Console.TUI && term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
	if useTUI {
		err = tui.Run(runCtx, session, tui.Options{
			Title:      cfg.MudName,
			ColorLevel: level,
			MaxBytes:   cfg.Transcript.MaxBytes,
		})
	} else {
		err = runConsole(runCtx, session, cfg, level)
	}
	cancel()
	<-session.Done()

	if err != nil {
		return err
	}
	if err := session.Err(); err != nil {
		if useTUI {
			// the notice in the transcript went away with the alternate screen
			fmt.Println("** mudconsole disconnected:", err.Error())
		}
		return err
	}
	return nil
}

func runConsole(ctx context.Context, session *lib.Session, cfg config.Config, level lib.ColorLevel) error {
	con, err := console.NewConsole(cfg.Console.Readline, cfg.Console.HistoryFile)
	if err != nil {
		return fmt.Errorf("could not open console: %w", err)
	}
	defer con.Close()

	renderer := console.NewRenderer(con, level)
	defer session.Transcript().Subscribe(renderer)()

	lines := make(chan string)
	readErrs := make(chan error, 1)
	go func() {
		for {
			line, err := con.Readline()
			if err != nil {
				readErrs <- err
				return
			}
			select {
			case lines <- line:
			case <-session.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-session.Done():
			return nil
		case <-ctx.Done():
			return nil
		case err := <-readErrs:
			if console.IsQuit(err) {
				return nil
			}
			return fmt.Errorf("failed to read new input line: %w", err)
		case line := <-lines:
			if err := session.Submit(ctx, line); err != nil {
				if errors.Is(err, lib.ErrSessionClosed) || errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

// overridesFromArguments turns parsed command line arguments into config
// overrides. Flags only override when given, so the config file can still
// turn them on.
func overridesFromArguments(arguments map[string]interface{}) (config.Overrides, error) {
	var o config.Overrides

	o.Address = stringArgument(arguments, "<host>")
	if portString := stringArgument(arguments, "<port>"); portString != nil {
		port, err := strconv.Atoi(*portString)
		if err != nil || port < 1 || 65535 < port {
			return o, errors.New("port must be a number 1-65535")
		}
		o.Port = &port
	}
	if maxString := stringArgument(arguments, "--max-transcript"); maxString != nil {
		maxBytes, err := strconv.Atoi(*maxString)
		if err != nil || maxBytes < 0 {
			return o, errors.New("--max-transcript must be a number of bytes")
		}
		o.MaxTranscript = &maxBytes
	}

	o.MudName = stringArgument(arguments, "--name")
	o.Origin = stringArgument(arguments, "--origin")
	o.TranscriptFile = stringArgument(arguments, "--transcript")
	o.HistoryFile = stringArgument(arguments, "--history")
	o.LogFile = stringArgument(arguments, "--log-file")
	o.LogLevel = stringArgument(arguments, "--log-level")

	o.TLS = flagArgument(arguments, "--tls")
	o.TLSNoVerify = flagArgument(arguments, "--tls-noverify")
	o.NoTUI = flagArgument(arguments, "--no-tui")
	o.NoReadline = flagArgument(arguments, "--no-readline")
	o.NoColor = flagArgument(arguments, "--no-color")
	return o, nil
}

func stringArgument(arguments map[string]interface{}, name string) *string {
	if value, ok := arguments[name].(string); ok {
		return &value
	}
	return nil
}

func flagArgument(arguments map[string]interface{}, name string) *bool {
	if value, ok := arguments[name].(bool); ok && value {
		return &value
	}
	return nil
}
