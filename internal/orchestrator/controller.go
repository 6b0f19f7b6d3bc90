package orchestrator

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/candidate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/gate"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/results"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/scorer"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/stepcfg"
	"github.com/sedaily/sedaily-ainexus-title-ver1-sub000/internal/trace"
)
// #endregion imports

// Caller-facing error strings for failures that abort before any step runs.
const (
	errCandidateNotFound    = "CandidateNotFound"
	errConfigurationMissing = "ConfigurationMissing"
	errSessionCancelled     = "SessionCancelled"
)

// #region config

// Config tunes a controller.
type Config struct {
	PipelineID string
	MaxRetries int // per-step retries beyond the first attempt; 0 = default 3
}

// #endregion

// #region deps

// Deps are the controller's collaborators. All are injected; the controller
// holds no process-wide state.
type Deps struct {
	Candidates CandidateSource
	Steps      StepSource
	Scorer     scorer.Gateway
	Results    ResultStore
	Publisher  Publisher
	Trace      trace.Sink
	Logger     *zap.Logger // nil = no-op
}

// #endregion

// #region controller

// Controller runs evaluation sessions. One Controller serves any number of
// concurrent sessions; each Run call owns its session exclusively.
type Controller struct {
	cfg  Config
	deps Deps
	gate *gate.Gate
	log  *zap.SugaredLogger
}

// New creates a fully wired controller.
func New(cfg Config, deps Deps) *Controller {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = gate.DefaultConfig().MaxRetries
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Trace == nil {
		deps.Trace = trace.NopSink{}
	}
	return &Controller{
		cfg:  cfg,
		deps: deps,
		gate: gate.New(gate.Config{MaxRetries: cfg.MaxRetries}),
		log:  deps.Logger.Sugar(),
	}
}

// #endregion

// #region run

// Run drives one evaluation session to completion and returns its
// structured result. Scorer failures are folded into 0.0-score attempts and
// never abort the session; only a missing candidate, a broken step
// configuration, or context cancellation terminate early.
func (c *Controller) Run(ctx context.Context, trig Trigger) Result {
	// LOADING
	cand, err := c.deps.Candidates.Get(ctx, trig.CandidateID, trig.Version)
	if err != nil {
		reason := errCandidateNotFound
		if !errors.Is(err, candidate.ErrNotFound) {
			reason = fmt.Sprintf("candidate load failed: %v", err)
		}
		c.trace(ctx, trig.SessionID, 0, trace.KindError, reason)
		c.log.Warnw("session aborted before evaluation", "session", trig.SessionID, "reason", reason)
		return Result{Success: false, SessionID: trig.SessionID, CandidateID: trig.CandidateID,
			Verdict: VerdictRejected, Error: reason}
	}

	// CONFIGURED
	steps, err := c.deps.Steps.LoadSteps(ctx, trig.PipelineID)
	if err != nil {
		msg := fmt.Sprintf("%s: %v", errConfigurationMissing, err)
		c.trace(ctx, trig.SessionID, 0, trace.KindError, msg)
		return Result{Success: false, SessionID: trig.SessionID, CandidateID: trig.CandidateID,
			Verdict: VerdictRejected, Error: msg}
	}

	sess := NewSession(trig)
	sess.Phase = PhaseEvaluating
	c.trace(ctx, sess.SessionID, 0, trace.KindPlanning,
		fmt.Sprintf("evaluating %q (v%d) through %d steps", cand.Title, cand.Version, len(steps)))

	// EVALUATING(n) -> CHECKED(n) -> {RETRYING | ADVANCING | FINALIZING}
	cancelled := false
	for sess.Phase == PhaseEvaluating {
		if err := ctx.Err(); err != nil {
			c.trace(ctx, sess.SessionID, sess.CurrentStep, trace.KindError,
				fmt.Sprintf("%s: %v", errSessionCancelled, err))
			sess.Overall = OverallFailed
			sess.Phase = PhaseFinalizing
			cancelled = true
			break
		}

		step := steps[sess.CurrentStep-1]
		stepRes, d := c.evaluateStep(ctx, sess, cand, steps)

		switch d.Action {
		case gate.ActionRetry:
			c.trace(ctx, sess.SessionID, step.StepNumber, trace.KindRetrying, d.Reason)
		case gate.ActionAdvance:
			c.trace(ctx, sess.SessionID, step.StepNumber, trace.KindAdvancing, d.Reason)
		}

		sess = Transition(sess, stepRes, d)
	}
	sess.FinishedAt = time.Now().UTC()

	// Persistence and final traces survive caller cancellation so a
	// cancelled session still leaves a queryable record.
	persistCtx := context.WithoutCancel(ctx)

	// FINALIZING
	summary := results.Summarize(steps, sess.Results)
	if cancelled {
		summary.OverallPassed = false
		summary.Reason = "session cancelled before completion"
	}

	verdict := VerdictRejected
	if summary.OverallPassed {
		verdict = VerdictApproved
	}

	rec := c.sessionRecord(sess, summary, verdict)
	result := Result{
		Success:       !cancelled,
		SessionID:     sess.SessionID,
		CandidateID:   sess.CandidateID,
		OverallPassed: summary.OverallPassed,
		Verdict:       verdict,
		FinalScore:    summary.FinalScore,
	}
	result.Scores, result.Feedback = resultsByName(sess.Results)
	if cancelled {
		result.Error = errSessionCancelled
	}

	if err := c.deps.Results.SaveSession(persistCtx, rec); err != nil {
		c.log.Errorw("failed to persist session", "session", sess.SessionID, "error", err)
		result.Warning = appendWarning(result.Warning, fmt.Sprintf("result persistence failed: %v", err))
	}
	c.trace(persistCtx, sess.SessionID, 0, trace.KindFinalized, summary.Reason)

	// APPROVING
	if summary.OverallPassed {
		sess.Phase = PhaseApproving
		entry, err := c.deps.Publisher.Publish(persistCtx, cand, rec)
		if err != nil {
			// The evaluation verdict stands; only publication failed.
			verdict = VerdictApprovedUnpublished
			result.Verdict = verdict
			result.Warning = appendWarning(result.Warning, fmt.Sprintf("publish failed: %v", err))
			c.trace(persistCtx, sess.SessionID, 0, trace.KindError, fmt.Sprintf("publish failed: %v", err))
			c.log.Warnw("approved candidate not published", "session", sess.SessionID, "error", err)
			if err := c.deps.Results.SetVerdict(persistCtx, sess.SessionID, string(verdict)); err != nil {
				c.log.Errorw("failed to record verdict correction", "session", sess.SessionID, "error", err)
			}
		} else {
			c.trace(persistCtx, sess.SessionID, 0, trace.KindApproved,
				fmt.Sprintf("published library entry %s", entry.EntryID))
		}
		sess.Phase = PhaseDone
	} else {
		sess.Phase = PhaseFailed
	}

	c.log.Infow("session finished",
		"session", sess.SessionID, "candidate", sess.CandidateID,
		"passed", summary.OverallPassed, "verdict", string(result.Verdict),
		"score", summary.FinalScore)
	return result
}

// #endregion

// #region evaluate-step

// evaluateStep scores the session's current step once and checks it against
// the threshold. A gateway error is folded into a zero score so transient
// scorer failures consume a retry instead of aborting the session.
func (c *Controller) evaluateStep(ctx context.Context, sess Session, cand candidate.Candidate, steps []stepcfg.StepConfig) (results.StepResult, gate.Decision) {
	step := steps[sess.CurrentStep-1]
	attempt := sess.RetryCount + 1

	c.trace(ctx, sess.SessionID, step.StepNumber, trace.KindEvaluating,
		fmt.Sprintf("step %d (%s): attempt %d", step.StepNumber, step.Name, attempt))

	req := scorer.Request{
		Instructions: renderInstructions(step.InstructionTemplate, cand),
		Content:      cand.Content,
		Prior:        priorOutputs(sess, steps),
	}
	res, err := c.deps.Scorer.Score(ctx, req)
	if err != nil {
		res = scorer.Result{Score: 0, Feedback: fmt.Sprintf("scorer error: %v", err)}
		c.trace(ctx, sess.SessionID, step.StepNumber, trace.KindError,
			fmt.Sprintf("step %d (%s): scorer failed: %v", step.StepNumber, step.Name, err))
		c.log.Warnw("scorer failure folded into step score",
			"session", sess.SessionID, "step", step.StepNumber, "error", err)
	}
	res.Score = scorer.Clamp(res.Score)

	hasNext := sess.CurrentStep < len(steps)
	d := c.gate.Decide(res.Score, step.Threshold, sess.RetryCount, hasNext)

	c.trace(ctx, sess.SessionID, step.StepNumber, trace.KindEvaluated,
		fmt.Sprintf("step %d (%s): score %.3f (threshold %.3f)", step.StepNumber, step.Name, res.Score, step.Threshold))

	return results.StepResult{
		StepNumber: step.StepNumber,
		Name:       step.Name,
		Score:      res.Score,
		Passed:     d.Passed,
		Feedback:   res.Feedback,
		RetryCount: sess.RetryCount,
		Timestamp:  time.Now().UTC(),
	}, d
}

// #endregion

// #region helpers

// sessionRecord builds the persisted form of a finished session.
func (c *Controller) sessionRecord(sess Session, summary results.Summary, verdict Verdict) results.SessionRecord {
	rec := results.SessionRecord{
		SessionID:   sess.SessionID,
		CandidateID: sess.CandidateID,
		Version:     sess.Version,
		SubmitterID: sess.SubmitterID,
		PipelineID:  sess.PipelineID,
		Overall:     string(sess.Overall),
		Verdict:     string(verdict),
		FinalScore:  summary.FinalScore,
		Reason:      summary.Reason,
		StartedAt:   sess.StartedAt,
		FinishedAt:  sess.FinishedAt,
	}
	for _, res := range sess.Results {
		rec.Steps = append(rec.Steps, res)
	}
	sortStepResults(rec.Steps)
	return rec
}

// trace appends an event and logs on sink failure. Trace delivery never
// affects session control flow.
func (c *Controller) trace(ctx context.Context, sessionID string, stepNumber int, kind trace.Kind, msg string) {
	ev := trace.Event{
		SessionID:  sessionID,
		StepNumber: stepNumber,
		Kind:       kind,
		Message:    msg,
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.deps.Trace.Append(ctx, ev); err != nil {
		c.log.Warnw("trace append failed", "session", sessionID, "kind", string(kind), "error", err)
	}
}

func sortStepResults(steps []results.StepResult) {
	sort.Slice(steps, func(i, j int) bool { return steps[i].StepNumber < steps[j].StepNumber })
}

func appendWarning(existing, add string) string {
	if existing == "" {
		return add
	}
	return existing + "; " + add
}

// #endregion
