// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"
)

type Action string

const (
	Register   Action = "register"
	Deposit    Action = "deposit"
	Contribute Action = "contribute"
	Vote       Action = "vote"
	Grant      Action = "grant"
	Reset      Action = "reset"
	Distribute Action = "distribute"
	Batch      Action = "batch"
	Transfer   Action = "transfer"
	Terminate  Action = "terminate"
	Pause      Action = "pause"
	Unpause    Action = "unpause"
	Quorum     Action = "quorum"
	Claim      Action = "claim"
	Withdraw   Action = "withdraw"
	Balance    Action = "balance"
)

type Plan struct {
	// The name of the plan.
	Name string `json:"name" yaml:"name"`
	// The key acting as ledger owner.
	Owner string `json:"owner" yaml:"owner"`
	// Steps to perform in order.
	Steps []Step `json:"steps" yaml:"steps"`
}

type Step struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Action      Action `json:"action"                yaml:"action"`

	// Member identity references. [Identities] is only used by batch.
	Identity   string   `json:"identity,omitempty"   yaml:"identity,omitempty"`
	Identities []string `json:"identities,omitempty" yaml:"identities,omitempty"`
	Agreement  string   `json:"agreement,omitempty"  yaml:"agreement,omitempty"`

	// Amount is a decimal in whole asset units.
	Amount string `json:"amount,omitempty" yaml:"amount,omitempty"`
	// Key names the operator or claimant.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
	// To names the key receiving a membership or withdrawal.
	To string `json:"to,omitempty" yaml:"to,omitempty"`
	// Deadline is a claim expiry relative to now, e.g. "1h" or "-1m".
	Deadline string `json:"deadline,omitempty" yaml:"deadline,omitempty"`

	// ExpectError requires the step to fail with an error containing it.
	ExpectError string `json:"expectError,omitempty" yaml:"expect_error,omitempty"`
}

type Response struct {
	// The index of the step that generated this response.
	ID     int    `json:"id"`
	Action Action `json:"action"`
	Result Result `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

type Result struct {
	Account string `json:"account,omitempty"`
	Amount  string `json:"amount,omitempty"`
	Balance string `json:"balance,omitempty"`
	Held    string `json:"held,omitempty"`
}

func (r *Response) Print(w io.Writer) {
	b, err := json.Marshal(r)
	if err != nil {
		fmt.Fprintln(w, `{"error": "failed to marshal response"}`)
		return
	}
	fmt.Fprintln(w, string(b))
}

func unmarshalPlan(b []byte) (*Plan, error) {
	var p Plan
	if strings.HasPrefix(strings.TrimSpace(string(b)), "{") {
		if err := json.Unmarshal(b, &p); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
		}
	} else if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}
	return &p, p.Verify()
}

func (p *Plan) Verify() error {
	if len(p.Owner) == 0 {
		return fmt.Errorf("%w: no owner key", ErrInvalidPlan)
	}
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		if err := step.verify(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

func (s *Step) verify() error {
	need := func(field string, v string) error {
		if len(v) == 0 {
			return fmt.Errorf("%s requires %s", s.Action, field)
		}
		return nil
	}
	switch s.Action {
	case Register, Terminate:
		return firstErr(need("identity", s.Identity), need("agreement", s.Agreement))
	case Deposit, Contribute:
		return firstErr(need("identity", s.Identity), need("amount", s.Amount))
	case Vote:
		return firstErr(need("identity", s.Identity), need("key", s.Key))
	case Grant:
		return firstErr(need("key", s.Key), need("amount", s.Amount))
	case Reset:
		return need("key", s.Key)
	case Distribute, Balance:
		return need("identity", s.Identity)
	case Batch:
		if len(s.Identities) == 0 {
			return fmt.Errorf("%s requires identities", s.Action)
		}
		return nil
	case Transfer:
		return firstErr(need("identity", s.Identity), need("to", s.To), need("agreement", s.Agreement))
	case Pause, Unpause:
		return nil
	case Quorum:
		return need("amount", s.Amount)
	case Claim:
		return firstErr(need("identity", s.Identity), need("key", s.Key), need("deadline", s.Deadline))
	case Withdraw:
		return firstErr(need("identity", s.Identity), need("key", s.Key), need("amount", s.Amount))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, s.Action)
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
