// Package cli implements blogctl, a command-line consumer of the content service.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"blogfront/internal/client"
	"blogfront/internal/models"
	"blogfront/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2

	DefaultBaseURL = "http://localhost:3001"

	shortDateLayout = "Jan 2, 2006"
)

const usageText = `Usage: blogctl [--base-url URL] [--output text|json|yaml] <command>

Commands:
  list                 list all posts
  get <id>             show one post
  create               create a post
      --title, --description, --cover-image, --content | --content-file
      --category (repeatable)
`

// usageError is reported with ExitUsage
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Runner holds the process environment of one blogctl invocation.
type Runner struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Now     func() time.Time
	BaseURL string

	// NewClient builds the content service client; nil means client.New
	NewClient func(baseURL string) (client.ContentService, error)
}

func NewRunner() *Runner {
	return &Runner{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Now:     time.Now,
		BaseURL: DefaultBaseURL,
	}
}

// Run executes args (without the program name) and returns the exit code
func (r *Runner) Run(ctx context.Context, args []string) int {
	err := r.run(ctx, args)
	if err == nil {
		return ExitOK
	}

	var usage *usageError
	switch {
	case errors.Is(err, pflag.ErrHelp):
		fmt.Fprint(r.Stderr, usageText)
		return ExitOK
	case errors.As(err, &usage):
		fmt.Fprintf(r.Stderr, "error: %v\n\n%s", err, usageText)
		return ExitUsage
	case errors.Is(err, client.ErrInvalidPayload), errors.Is(err, client.ErrInvalidArgument):
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return ExitUsage
	case errors.Is(err, client.ErrNotFound):
		fmt.Fprintln(r.Stderr, "blog not found")
		return ExitFailure
	default:
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return ExitFailure
	}
}

func (r *Runner) run(ctx context.Context, args []string) error {
	var baseURL, output string

	flagSet := pflag.NewFlagSet("blogctl", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&baseURL, "base-url", r.BaseURL, "content service base URL")
	flagSet.StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return usagef("%v", err)
	}

	render, err := r.renderer(output)
	if err != nil {
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return usagef("missing command")
	}

	newClient := r.NewClient
	if newClient == nil {
		newClient = func(baseURL string) (client.ContentService, error) {
			return client.New(baseURL)
		}
	}
	contentClient, err := newClient(baseURL)
	if err != nil {
		return usagef("%v", err)
	}

	command, cmdArgs := rest[0], rest[1:]
	switch command {
	case "list":
		if len(cmdArgs) != 0 {
			return usagef("list takes no arguments")
		}
		posts, err := contentClient.List(ctx)
		if err != nil {
			return err
		}
		return render.list(posts)

	case "get":
		if len(cmdArgs) != 1 {
			return usagef("get takes exactly one id")
		}
		post, err := contentClient.Get(ctx, cmdArgs[0])
		if err != nil {
			return err
		}
		return render.post(post)

	case "create":
		payload, err := r.parseCreate(cmdArgs)
		if err != nil {
			return err
		}
		post, err := contentClient.Create(ctx, payload)
		if err != nil {
			return err
		}
		return render.post(post)

	default:
		return usagef("unknown command %q", command)
	}
}

func (r *Runner) parseCreate(args []string) (models.NewPost, error) {
	var payload models.NewPost
	var contentFile string

	flagSet := pflag.NewFlagSet("create", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&payload.Title, "title", "", "post title")
	flagSet.StringArrayVar(&payload.Category, "category", nil, "category tag, repeatable")
	flagSet.StringVar(&payload.Description, "description", "", "short summary")
	flagSet.StringVar(&payload.CoverImage, "cover-image", "", "cover image URL")
	flagSet.StringVar(&payload.Content, "content", "", "post body")
	flagSet.StringVar(&contentFile, "content-file", "", "read the post body from a file, - for stdin")

	if err := flagSet.Parse(args); err != nil {
		return payload, usagef("create: %v", err)
	}
	if flagSet.NArg() != 0 {
		return payload, usagef("create: unexpected argument %q", flagSet.Arg(0))
	}

	if contentFile != "" {
		if payload.Content != "" {
			return payload, usagef("create: --content and --content-file are mutually exclusive")
		}
		content, err := r.readContent(contentFile)
		if err != nil {
			return payload, err
		}
		payload.Content = content
	}

	payload.Category = service.NormalizeCategories(payload.Category)
	return payload, nil
}

func (r *Runner) readContent(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(r.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return string(data), nil
}

type renderer struct {
	format string
	out    io.Writer
	now    func() time.Time
}

func (r *Runner) renderer(format string) (*renderer, error) {
	switch format {
	case "text", "json", "yaml":
	default:
		return nil, usagef("unknown output format %q", format)
	}

	now := r.Now
	if now == nil {
		now = time.Now
	}
	return &renderer{format: format, out: r.Stdout, now: now}, nil
}

func (r *renderer) list(posts []models.Post) error {
	switch r.format {
	case "json":
		return r.writeJSON(posts)
	case "yaml":
		return r.writeYAML(posts)
	}

	if len(posts) == 0 {
		_, err := fmt.Fprintln(r.out, "no posts")
		return err
	}
	for _, p := range posts {
		cats := p.Category
		if len(cats) > 2 {
			cats = cats[:2]
		}
		if _, err := fmt.Fprintf(r.out, "%s\t%s\t[%s]\t%s\n", p.ID, p.Title, strings.Join(cats, ", "), r.date(p.Date)); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) post(p *models.Post) error {
	switch r.format {
	case "json":
		return r.writeJSON(p)
	case "yaml":
		return r.writeYAML(p)
	}

	_, err := fmt.Fprintf(r.out, "%s\nid: %s\ncategories: %s\ndate: %s\ncover: %s\n\n%s\n\n%s\n",
		p.Title, p.ID, strings.Join(p.Category, ", "), r.date(p.Date), p.CoverImage, p.Description, p.Content)
	return err
}

// date renders the wire timestamp as a short date plus relative age; unparsable values pass through
func (r *renderer) date(value string) string {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%s (%s)", t.Format(shortDateLayout), humanize.RelTime(t, r.now(), "ago", "from now"))
}

func (r *renderer) writeJSON(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *renderer) writeYAML(v interface{}) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
