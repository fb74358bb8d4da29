// Package conversation drives the turn-taking exchange between two participants.
//
// One round is a turn from participant A followed by a turn from participant
// B. Each turn invokes the speaker's model with the speaker's own history,
// records the draft in the transcript, optionally asks the operator to accept
// or retry it, and on acceptance mirrors the text into both histories with
// inverted roles. The run is strictly sequential and stops after the requested
// number of rounds or at the first error.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"duet/gate"
	"duet/model"
	"duet/transcript"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Pace is the fixed pause after every accepted turn.
const Pace = 2 * time.Second

// Invoker generates one turn of text for a model identifier.
// *provider.Invoker satisfies it.
type Invoker interface {
	Invoke(ctx context.Context, modelID string, history []model.Message) (string, error)
}

// Options configures an Orchestrator.
type Options struct {
	// TranscriptDir is where the run's transcript file is created ("." if empty).
	TranscriptDir string

	// Console receives the live display. Nil discards it.
	Console *Console

	Logger logrus.FieldLogger
}

// Result summarizes a run. Once the transcript is open it is returned even
// when the run fails, reflecting the work done up to the failure. A run that
// never starts (invalid arguments, transcript not writable) returns nil.
type Result struct {
	RunID          string
	TranscriptPath string
	Invocations    int
	Retries        int
	AcceptedTurns  int
	Rounds         int
}

// Orchestrator alternates turns between two participants.
type Orchestrator struct {
	invoker       Invoker
	gate          gate.Gate
	transcriptDir string
	console       *Console
	log           logrus.FieldLogger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Orchestrator. g may be nil when every run is unsupervised.
func New(invoker Invoker, g gate.Gate, opts Options) *Orchestrator {
	if opts.Console == nil {
		opts.Console = NewConsole(nil)
	}
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = l
	}

	return &Orchestrator{
		invoker:       invoker,
		gate:          g,
		transcriptDir: opts.TranscriptDir,
		console:       opts.Console,
		log:           opts.Logger,
		now:           time.Now,
		sleep:         sleepContext,
	}
}

// Run performs exchanges rounds between a and b.
//
// The transcript is opened for the run's start time and seeded with a's
// existing history. When supervised is false the gate is never consulted and
// every generated turn is accepted. Any invoker, gate or transcript error
// aborts the run; blocks already written stay in the transcript.
func (o *Orchestrator) Run(ctx context.Context, a, b *Participant, exchanges int, supervised bool) (*Result, error) {
	if exchanges < 0 {
		return nil, fmt.Errorf("exchange count must be non-negative, got %d", exchanges)
	}
	if a == nil || b == nil {
		return nil, errors.New("both participants are required")
	}
	if supervised && o.gate == nil {
		return nil, errors.New("supervised run requires a confirmation gate")
	}

	res := &Result{RunID: uuid.New().String()}
	log := o.log.WithField("run", res.RunID)

	tw, err := transcript.Open(o.transcriptDir, o.now())
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := tw.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close transcript")
		}
	}()
	res.TranscriptPath = tw.Path()

	if err := tw.WriteSeed(a.history); err != nil {
		return res, err
	}

	log.WithFields(logrus.Fields{
		"model_a":    a.modelID,
		"model_b":    b.modelID,
		"exchanges":  exchanges,
		"supervised": supervised,
		"seed":       len(a.history),
		"transcript": res.TranscriptPath,
	}).Info("conversation started")

	for round := 1; round <= exchanges; round++ {
		for _, pair := range [2][2]*Participant{{a, b}, {b, a}} {
			speaker, listener := pair[0], pair[1]

			if err := o.turn(ctx, log.WithField("round", round), tw, speaker, listener, supervised, res); err != nil {
				return res, fmt.Errorf("round %d, %s: %w", round, speaker.modelID, err)
			}
			if err := o.sleep(ctx, Pace); err != nil {
				return res, err
			}
		}
		res.Rounds = round
	}

	log.WithFields(logrus.Fields{
		"invocations": res.Invocations,
		"retries":     res.Retries,
	}).Info("conversation finished")

	return res, nil
}

// turn generates drafts for speaker until one is accepted, then commits it.
// Every draft, including rejected ones, is appended to the transcript.
func (o *Orchestrator) turn(ctx context.Context, log logrus.FieldLogger, tw *transcript.Writer, speaker, listener *Participant, supervised bool, res *Result) error {
	o.console.Preparing(speaker.modelID)

	for attempt := 1; ; attempt++ {
		text, err := o.invoker.Invoke(ctx, speaker.modelID, speaker.History())
		res.Invocations++
		if err != nil {
			return err
		}

		formatted := transcript.Normalize(text)
		o.console.Turn(speaker.modelID, formatted)
		if err := tw.Append(speaker.modelID, formatted); err != nil {
			return err
		}

		if supervised {
			decision, err := o.gate.Confirm(ctx)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"model":    speaker.modelID,
				"attempt":  attempt,
				"decision": decision,
			}).Debug("operator decision")

			if decision == gate.Retry {
				res.Retries++
				continue
			}
		}

		// Histories keep the raw text; only display and transcript are normalized
		commit(speaker, listener, text)
		res.AcceptedTurns++
		return nil
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
