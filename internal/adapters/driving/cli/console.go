package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/fieldstation/zimline/internal/adapters/driven/catalog"
	"github.com/fieldstation/zimline/internal/core/domain"
	"github.com/fieldstation/zimline/internal/core/ports/driving"
	"github.com/fieldstation/zimline/internal/logger"
)

var (
	consolePace  float64
	consoleWidth int
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive line-oriented session",
	Long: `Starts the interactive console used over telnet and RF links.
Output is wrapped to the link width and optionally paced to avoid
overrunning slow channels.

Commands inside the session:
  search <query>        search the archive
  browse                list entries from the front of the archive
  read <n> [chars]      read result n from the last search
  read <path> [chars]   read an entry by archive path
  find <title>          show how an entry is actually stored
  suggest <partial>     title suggestions
  info                  archive information
  help                  command summary
  quit                  end the session`,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().Float64Var(&consolePace, "pace", 0, "output pacing in lines per second (0 = unpaced)")
	consoleCmd.Flags().IntVarP(&consoleWidth, "width", "w", 0, "line width (default from config or terminal)")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(cmd *cobra.Command, _ []string) error {
	reader, cleanup, err := newReader()
	if err != nil {
		return err
	}
	defer cleanup()

	settings, archives := consoleSetup()
	width := consoleWidth
	if width <= 0 {
		width = settings.width
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}

	c := &console{
		reader:   reader,
		archives: archives,
		in:       cmd.InOrStdin(),
		out:      cmd.OutOrStdout(),
		width:    width,
		budget:   settings.budget,
		callsign: settings.callsign,
	}
	if consolePace > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(consolePace), 1)
	}
	return c.run(cmd.Context())
}

type consoleSettings struct {
	width    int
	budget   int
	callsign string
}

// consoleSetup loads presentation settings and the archive catalog,
// falling back to defaults when configuration is unavailable.
func consoleSetup() (consoleSettings, *catalog.Catalog) {
	s := consoleSettings{width: 80, budget: 2000}
	store, err := loadConfig()
	if err != nil {
		return s, nil
	}
	cfg := store.Config()
	if cfg.LineWidth > 0 {
		s.width = cfg.LineWidth
	}
	s.budget = cfg.DefaultMaxChars
	s.callsign = cfg.Callsign
	return s, loadCatalog(cfg)
}

// console is one interactive session over a line-oriented link.
type console struct {
	reader   driving.ReaderService
	archives *catalog.Catalog
	in       io.Reader
	out      io.Writer
	width    int
	budget   int
	callsign string
	limiter  *rate.Limiter

	lastHits []domain.SearchHit
}

func (c *console) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session := uuid.New().String()
	logger.Info("Console session %s started (width=%d, budget=%d)", session, c.width, c.budget)

	// Archive files dropped into the watched directory during the
	// session show up in 'info' without a restart.
	if c.archives != nil {
		go func() {
			if err := c.archives.Watch(ctx); err != nil {
				logger.Warn("Catalog watcher stopped: %v", err)
			}
		}()
	}

	info := c.reader.Info()
	c.printf("=== %s ===", info.Name)
	c.printf("%d entries. Type 'help' for commands.", info.EntryCount)
	c.printf("")

	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "wiki> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest := splitCommand(line)
		switch verb {
		case "quit", "exit", "q", "bye":
			c.signOff()
			return scanner.Err()
		case "help":
			c.help()
		case "info":
			c.info()
		case "browse":
			c.browse(ctx)
		case "search":
			c.search(ctx, rest)
		case "read":
			c.read(ctx, rest)
		case "find":
			c.find(ctx, rest)
		case "suggest":
			c.suggest(ctx, rest)
		default:
			if n, err := strconv.Atoi(verb); err == nil {
				c.readIndex(ctx, n, c.budget)
				continue
			}
			c.printf("Unknown command: %s. Type 'help' for available commands.", verb)
		}
	}
	c.signOff()
	return scanner.Err()
}

func splitCommand(line string) (verb, rest string) {
	parts := strings.SplitN(line, " ", 2)
	verb = strings.ToLower(parts[0])
	if len(parts) > 1 {
		rest = strings.TrimSpace(parts[1])
	}
	return verb, rest
}

func (c *console) help() {
	c.printf("Commands:")
	c.printf("  search <query>       search the archive")
	c.printf("  browse               list available entries")
	c.printf("  read <n> [chars]     read result n from the last list")
	c.printf("  read <path> [chars]  read an entry by path")
	c.printf("  find <title>         show how an entry is stored")
	c.printf("  suggest <partial>    title suggestions")
	c.printf("  info                 archive information")
	c.printf("  quit                 end the session")
}

func (c *console) info() {
	info := c.reader.Info()
	c.printf("Archive:        %s", info.Name)
	c.printf("Entries:        %d", info.EntryCount)
	c.printf("Fulltext index: %t", info.HasFulltext)
	c.printf("Title index:    %t", info.HasTitleIndex)

	if c.archives == nil {
		return
	}
	entries := c.archives.Entries()
	if len(entries) == 0 {
		return
	}
	c.printf("")
	c.printf("Available archives:")
	for _, e := range entries {
		c.printf("  %s (%s)", e.Name, e.Path)
	}
}

func (c *console) search(ctx context.Context, query string) {
	if query == "" {
		c.printf("Usage: search <query>")
		return
	}
	hits, err := c.reader.Search(ctx, query, domain.SearchOptions{Limit: 10})
	if err != nil {
		c.printf("Search error: %v", err)
		return
	}
	c.showHits(hits)
}

func (c *console) browse(ctx context.Context) {
	hits, err := c.reader.Browse(ctx, 20)
	if err != nil {
		c.printf("Browse error: %v", err)
		return
	}
	c.showHits(hits)
}

func (c *console) showHits(hits []domain.SearchHit) {
	if len(hits) == 0 {
		c.printf("No results found.")
		return
	}
	c.lastHits = hits
	for i, hit := range hits {
		c.printf("[%d] %s", i+1, hit.Title)
		if hit.Snippet != "" {
			c.printf("    %s", hit.Snippet)
		}
	}
	c.printf("")
	c.printf("Use 'read <number>' to read an entry.")
}

func (c *console) read(ctx context.Context, args string) {
	if args == "" {
		c.printf("Usage: read <number|path> [max_chars]")
		return
	}
	fields := strings.Fields(args)
	budget := c.budget
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			budget = n
		}
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		c.readIndex(ctx, n, budget)
		return
	}
	c.readPath(ctx, fields[0], budget)
}

func (c *console) readIndex(ctx context.Context, n, budget int) {
	if n < 1 || n > len(c.lastHits) {
		c.printf("Invalid number. Choose 1-%d from the last results.", len(c.lastHits))
		return
	}
	c.readPath(ctx, c.lastHits[n-1].Path, budget)
}

func (c *console) readPath(ctx context.Context, path string, budget int) {
	doc, err := c.reader.ResolveAndRender(ctx, path, budget)
	if err != nil {
		c.printf("Read error: %v", err)
		return
	}
	for _, line := range strings.Split(formatDocument(doc), "\n") {
		c.printf("%s", line)
	}
	if doc.Truncated && c.callsign != "" {
		c.printf("")
		c.printf("--- 73 DE %s ---", c.callsign)
	}
}

func (c *console) find(ctx context.Context, title string) {
	if title == "" {
		c.printf("Usage: find <title>")
		return
	}
	doc, err := c.reader.ResolveAndRender(ctx, title, 1)
	if err != nil {
		c.printf("Not stored under any variant of %q.", title)
		return
	}
	c.printf("Stored as: %s", doc.Path)
	c.printf("Title:     %s", doc.Title)
}

func (c *console) suggest(ctx context.Context, partial string) {
	if partial == "" {
		c.printf("Usage: suggest <partial_title>")
		return
	}
	titles, err := c.reader.Suggest(ctx, partial, 5)
	if err != nil {
		c.printf("Suggest error: %v", err)
		return
	}
	if len(titles) == 0 {
		c.printf("No suggestions.")
		return
	}
	for _, t := range titles {
		c.printf("  %s", t)
	}
}

func (c *console) signOff() {
	if c.callsign != "" {
		c.printf("73 DE %s!", c.callsign)
		return
	}
	c.printf("73! Goodbye!")
}

// printf wraps to the link width and paces each emitted line.
func (c *console) printf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	for _, line := range wrap(text, c.width) {
		if c.limiter != nil {
			c.limiter.Wait(context.Background()) //nolint:errcheck
		}
		fmt.Fprintln(c.out, line)
	}
}

// wrap breaks text at word boundaries to fit width. Words longer than
// the width are hard-split.
func wrap(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line.Len() > 0 {
				lines = append(lines, line.String())
				line.Reset()
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}
		switch {
		case line.Len() == 0:
			line.WriteString(word)
		case line.Len()+1+len(word) <= width:
			line.WriteByte(' ')
			line.WriteString(word)
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
		}
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
