package runner

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"risk-advisor/internal/agent"
	"risk-advisor/internal/session"
	"risk-advisor/pkg/llmprovider"
	pkgLog "risk-advisor/pkg/log"
)

// Runner drives one agent over lane sessions.
type Runner struct {
	def      agent.Definition
	llm      Generator
	sessions *session.Store
	tools    *agent.ToolRegistry
	l        pkgLog.Logger
	maxSteps int
	now      func() time.Time
}

// New builds a runner. Only the tools named by def are exposed to the model.
func New(l pkgLog.Logger, def agent.Definition, llm Generator, sessions *session.Store, registry *agent.ToolRegistry, maxSteps int) *Runner {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	if registry == nil {
		registry = agent.NewToolRegistry()
	}
	return &Runner{
		def:      def,
		llm:      llm,
		sessions: sessions,
		tools:    registry.Subset(def.Tools...),
		l:        l,
		maxSteps: maxSteps,
		now:      time.Now,
	}
}

func (r *Runner) Name() string {
	return r.def.Name
}

// Invoke runs one turn and returns the accumulated final text.
func (r *Runner) Invoke(ctx context.Context, key, text string) (string, error) {
	return Collect(r.Run(ctx, key, text))
}

// Run appends text to the lane history and streams the turn's events.
// The session must already exist. The turn holds the lane until the
// sequence is drained or abandoned.
func (r *Runner) Run(ctx context.Context, key, text string) iter.Seq2[*Event, error] {
	return func(yield func(*Event, error) bool) {
		outcome := "error"
		defer func() { turnsTotal.WithLabelValues(r.def.Name, outcome).Inc() }()

		sess, err := r.sessions.Get(ctx, key)
		if err != nil {
			yield(nil, fmt.Errorf("runner.%s: %w", r.def.Name, err))
			return
		}

		release, err := sess.AcquireTurn(ctx)
		if err != nil {
			yield(nil, fmt.Errorf("runner.%s: waiting for turn: %w", r.def.Name, err))
			return
		}
		defer release()

		ctx = agent.WithScope(ctx, agent.Scope{AppName: sess.AppName, UserID: sess.UserID, SessionID: key})

		history := r.append(sess, llmprovider.Message{
			Role:  llmprovider.RoleUser,
			Parts: []llmprovider.Part{{Text: text}},
		})
		system := &llmprovider.Message{
			Role:  llmprovider.RoleUser,
			Parts: []llmprovider.Part{{Text: r.def.SystemInstruction(r.now())}},
		}
		tools := r.tools.ToFunctionDefinitions()

		for step := 1; step <= r.maxSteps; step++ {
			r.l.Debugf(ctx, "runner.%s: step %d/%d", r.def.Name, step, r.maxSteps)

			resp, err := r.llm.GenerateContent(ctx, &llmprovider.Request{
				Model:             r.def.Model,
				SystemInstruction: system,
				Messages:          history,
				Tools:             tools,
				GoogleSearch:      r.def.GoogleSearch,
			})
			if err != nil {
				yield(nil, fmt.Errorf("runner.%s: step %d: %w", r.def.Name, step, err))
				return
			}

			calls := functionCalls(resp.Content)
			if len(calls) == 0 {
				reply := llmprovider.Message{Role: llmprovider.RoleModel, Parts: resp.Content.Parts}
				if len(reply.Parts) > 0 {
					r.append(sess, reply)
				}
				turnSteps.WithLabelValues(r.def.Name).Observe(float64(step))
				outcome = "success"
				yield(&Event{Author: r.def.Name, Content: reply, Step: step, final: true}, nil)
				return
			}

			for _, call := range calls {
				callMsg := llmprovider.Message{
					Role:  llmprovider.RoleModel,
					Parts: []llmprovider.Part{{FunctionCall: call}},
				}
				history = r.append(sess, callMsg)
				if !yield(&Event{Author: r.def.Name, Content: callMsg, Step: step}, nil) {
					return
				}

				respMsg := llmprovider.Message{
					Role: llmprovider.RoleFunction,
					Parts: []llmprovider.Part{{FunctionResponse: &llmprovider.FunctionResponse{
						Name:     call.Name,
						Response: r.execute(ctx, call),
					}}},
				}
				history = r.append(sess, respMsg)
				if !yield(&Event{Author: call.Name, Content: respMsg, Step: step}, nil) {
					return
				}
			}
		}

		r.l.Warnf(ctx, "runner.%s: exceeded max steps (%d)", r.def.Name, r.maxSteps)
		fallback := llmprovider.Message{
			Role:  llmprovider.RoleModel,
			Parts: []llmprovider.Part{{Text: MaxStepsFallback}},
		}
		r.append(sess, fallback)
		outcome = "max_steps"
		yield(&Event{Author: r.def.Name, Content: fallback, Step: r.maxSteps, final: true}, nil)
	}
}

func (r *Runner) append(sess *session.Session, msg llmprovider.Message) []llmprovider.Message {
	history := sess.Append(msg)
	r.sessions.Touch(sess)
	return history
}

// execute runs a tool. Failures are reported back to the model, not to the caller.
func (r *Runner) execute(ctx context.Context, call *llmprovider.FunctionCall) interface{} {
	tool, ok := r.tools.Get(call.Name)
	if !ok {
		r.l.Errorf(ctx, "runner.%s: tool %s not found", r.def.Name, call.Name)
		toolCallsTotal.WithLabelValues(r.def.Name, call.Name, "not_found").Inc()
		return map[string]string{"error": "tool not found"}
	}

	r.l.Infof(ctx, "runner.%s: calling tool %s with args: %+v", r.def.Name, call.Name, call.Args)
	res, err := tool.Execute(ctx, call.Args)
	if err != nil {
		r.l.Errorf(ctx, "runner.%s: tool %s failed: %v", r.def.Name, call.Name, err)
		toolCallsTotal.WithLabelValues(r.def.Name, call.Name, "error").Inc()
		return map[string]string{"error": err.Error()}
	}
	toolCallsTotal.WithLabelValues(r.def.Name, call.Name, "success").Inc()
	return res
}

func functionCalls(msg llmprovider.Message) []*llmprovider.FunctionCall {
	var calls []*llmprovider.FunctionCall
	for _, p := range msg.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// Collect accumulates a turn: only final events count, only their first part's
// text is taken, and noise fragments are skipped.
func Collect(seq iter.Seq2[*Event, error]) (string, error) {
	var sb strings.Builder
	for ev, err := range seq {
		if err != nil {
			return "", err
		}
		if ev == nil || !ev.IsFinalResponse() || len(ev.Content.Parts) == 0 {
			continue
		}
		if text := ev.Content.Parts[0].Text; !noiseFragments[text] {
			sb.WriteString(text)
		}
	}
	return sb.String(), nil
}
