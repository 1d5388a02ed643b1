package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ezBadminton/groupcup/gate"
	"github.com/ezBadminton/groupcup/internal/config"
	"github.com/ezBadminton/groupcup/internal/logging"
	"github.com/ezBadminton/groupcup/store"
)

var errUsage = errors.New("usage")

type app struct {
	store *store.Store
	conf  *config.Config
	out   io.Writer
	in    io.Reader
}

type command struct {
	usage string

	// Persist the state after a successful run
	save bool

	// Runs without loading the state
	stateless bool

	run func(a *app, args []string) error
}

var commands = map[string]command{
	"ranking":        {usage: "ranking", run: cmdRanking},
	"add":            {usage: "add NAME...", save: true, run: cmdAdd},
	"rename":         {usage: "rename OLD NEW", save: true, run: cmdRename},
	"remove":         {usage: "remove NAME", save: true, run: cmdRemove},
	"move":           {usage: "move NAME POSITION", save: true, run: cmdMove},
	"import-ranking": {usage: "import-ranking FILE.csv", save: true, run: cmdImportRanking},
	"seed":           {usage: "seed [--algorithm snake|split-half]", save: true, run: cmdSeed},
	"schedule":       {usage: "schedule [GROUP]", run: cmdSchedule},
	"score":          {usage: "score [--generation N] GROUP NAME_A NAME_B SCORE_A SCORE_B", save: true, run: cmdScore},
	"clear":          {usage: "clear [--generation N] (--all | GROUP NAME_A NAME_B)", save: true, run: cmdClear},
	"standings":      {usage: "standings [GROUP]", run: cmdStandings},
	"bracket":        {usage: "bracket", run: cmdBracket},
	"show":           {usage: "show [--json]", run: cmdShow},
	"export":         {usage: "export [FILE]", run: cmdExport},
	"import":         {usage: "import FILE|-", save: true, run: cmdImport},
	"hash-password":  {usage: "hash-password PASSWORD", stateless: true, run: cmdHashPassword},
}

func main() {
	logging.Bootstrap("info")

	conf, err := config.Load(".")
	if err != nil {
		logging.Log.Fatalf("Failed to load config: %v", err)
	}
	logging.Bootstrap(conf.LogLevel)

	if err := run(conf, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "groupcup:", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("groupcup", flag.ContinueOnError)
	flags.SetOutput(stderr)
	statePath := flags.String("state", conf.StatePath, "Path of the state file")
	password := flags.String("password", os.Getenv("GROUPCUP_PASSWORD"), "Organizer password for protected commands")
	flags.Usage = func() { printUsage(stderr) }

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		printUsage(stderr)
		return fmt.Errorf("no command given")
	}

	name := flags.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", name)
	}

	a := &app{conf: conf, out: stdout, in: stdin}

	if !cmd.stateless {
		s, err := store.Load(*statePath, conf.InitialRanking)
		if err != nil {
			fmt.Fprintf(stderr, "notice: the state file was ignored: %v\n", err)
			fmt.Fprintf(stderr, "notice: it is kept as %s%s on the next save\n", *statePath, store.BackupSuffix)
		}

		g := gate.New(conf.PasswordHash, conf.Protected)
		if *password != "" {
			if err := g.Unlock(*password); err != nil {
				return err
			}
		}
		s.SetAuthorizer(g)
		a.store = s
	}

	err := cmd.run(a, flags.Args()[1:])
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: groupcup %s", cmd.usage)
	}
	if err != nil {
		logging.Log.WithError(err).Debugf("Command %s failed", name)
		return err
	}

	if cmd.save {
		return a.store.Save()
	}
	return nil
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("usage: groupcup [--state FILE] [--password PASSWORD] COMMAND\n\ncommands:\n")
	for _, name := range names {
		sb.WriteString("  ")
		sb.WriteString(commands[name].usage)
		sb.WriteString("\n")
	}
	fmt.Fprint(w, sb.String())
}
