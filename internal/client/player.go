package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/pinpoint/internal/domain/round"
	"github.com/okian/pinpoint/pkg/logger"
)

// Default image geometry the player assumes for typed clicks.
const (
	DefaultImageWidth  = 1000
	DefaultImageHeight = 700
	DefaultCharacter   = "waldo"
)

// Result summarizes one played round.
type Result struct {
	Found   bool
	Elapsed time.Duration
	Clicks  int
}

// Player runs a round from typed "x y" clicks.
type Player struct {
	client      *Client
	characterID string
	width       float64
	height      float64
	name        string
	interval    time.Duration
	roundOpts   []round.Option
	log         logger.Logger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithCharacter sets the character the player looks for.
func WithCharacter(id string) PlayerOption {
	return func(p *Player) {
		if id != "" {
			p.characterID = id
		}
	}
}

// WithImageSize sets the image size clicks are measured against.
func WithImageSize(width, height float64) PlayerOption {
	return func(p *Player) {
		if width > 0 && height > 0 {
			p.width, p.height = width, height
		}
	}
}

// WithName submits a score under name after a find. Empty skips submission.
func WithName(name string) PlayerOption {
	return func(p *Player) { p.name = strings.TrimSpace(name) }
}

// WithTickInterval sets how often the timer line is redrawn.
func WithTickInterval(d time.Duration) PlayerOption {
	return func(p *Player) { p.interval = d }
}

// WithRoundOptions passes options to the round timer.
func WithRoundOptions(opts ...round.Option) PlayerOption {
	return func(p *Player) { p.roundOpts = append(p.roundOpts, opts...) }
}

// WithPlayerLogger sets the player's logger.
func WithPlayerLogger(l logger.Logger) PlayerOption {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPlayer returns a player that uses c.
func NewPlayer(c *Client, opts ...PlayerOption) *Player {
	p := &Player{
		client:      c,
		characterID: DefaultCharacter,
		width:       DefaultImageWidth,
		height:      DefaultImageHeight,
		interval:    round.DefaultTickInterval,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play resets the server, starts the timer and checks every click read from
// in until one hits or in is exhausted. Progress goes to out.
func (p *Player) Play(ctx context.Context, in io.Reader, out io.Writer) (Result, error) {
	w := &lockedWriter{w: out}

	if err := p.client.Reset(ctx); err != nil {
		return Result{}, fmt.Errorf("reset: %w", err)
	}

	r := round.New(p.roundOpts...)
	r.Start()
	defer r.Stop()

	tickCtx, cancel := context.WithCancel(ctx)
	ticking := make(chan struct{})
	go func() {
		defer close(ticking)
		round.Run(tickCtx, r, p.interval, func(display string) {
			w.printf("timer %s\n", display)
		})
	}()
	defer func() {
		cancel()
		<-ticking
	}()

	w.printf("find %s: type clicks as \"x y\" on a %gx%g image\n", p.characterID, p.width, p.height)

	var res Result
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		x, y, err := parseClick(line)
		if err != nil {
			w.printf("%v\n", err)
			continue
		}
		if !r.Active() {
			continue
		}
		res.Clicks++

		cr, err := p.client.Check(ctx, CheckRequest{
			X:           x,
			Y:           y,
			ImageWidth:  p.width,
			ImageHeight: p.height,
			CharacterID: p.characterID,
		})
		if err != nil {
			if errors.Is(err, ErrUnexpectedStatus) {
				w.printf("click rejected: %v\n", err)
				continue
			}
			return res, err
		}
		if !cr.Correct {
			w.printf("not %s, try again\n", p.characterID)
			continue
		}

		res.Found = true
		res.Elapsed = r.Stop()
		if cr.Center != nil {
			w.printf("found %s at (%d, %d) in %s\n", p.characterID, cr.Center.X, cr.Center.Y, round.FormatElapsed(res.Elapsed))
		}
		p.log.Info(ctx, "character found",
			logger.String("characterId", p.characterID),
			logger.Duration("elapsed", res.Elapsed),
			logger.Int("clicks", res.Clicks))

		if p.name != "" {
			if err := p.client.SubmitScore(ctx, p.name, res.Elapsed); err != nil {
				return res, fmt.Errorf("submit score: %w", err)
			}
			w.printf("score saved for %s\n", p.name)
		}
		return res, nil
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("read clicks: %w", err)
	}
	return res, nil
}

func parseClick(line string) (x, y float64, err error) {
	parts := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadClick, line)
	}
	if x, err = strconv.ParseFloat(parts[0], 64); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadClick, line)
	}
	if y, err = strconv.ParseFloat(parts[1], 64); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadClick, line)
	}
	return x, y, nil
}

// lockedWriter serializes timer ticks with click feedback.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, format, args...)
}
