// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	smath "github.com/ava-labs/avalanchego/utils/math"
	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
)

// ApproveToUseContribution adds [voter]'s current contribution balance to
// [operator]'s accumulated weight. Repeated votes are not deduplicated: each
// one adds the voter's balance again.
func (l *Ledger) ApproveToUseContribution(ctx context.Context, actor codec.Address, voter codec.Address, operator codec.Address) error {
	if voter.IsEmpty() || operator.IsEmpty() {
		return ErrNullAddress
	}

	var accumulated uint64
	return l.chain.Run(ctx, l.guarded("ApproveToUseContribution", actor), func(ctx context.Context, mu state.Mutable) error {
		m, err := storage.GetMember(ctx, mu, l.addr, voter)
		if err != nil {
			return err
		}
		if m.State != storage.Active {
			return fmt.Errorf("%w: %s is %s", ErrMemberNotActive, voter, m.State)
		}
		weight, err := storage.GetContributionBalance(ctx, mu, l.addr, voter)
		if err != nil {
			return err
		}
		if weight == 0 {
			return fmt.Errorf("%w: %s", ErrZeroBalance, voter)
		}
		prev, err := storage.GetAccumulator(ctx, mu, l.addr, operator)
		if err != nil {
			return err
		}
		accumulated, err = smath.Add(prev, weight)
		if err != nil {
			return err
		}
		if err := storage.SetAccumulator(ctx, mu, l.addr, operator, accumulated); err != nil {
			return err
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.votes.Inc()
			l.log.Debug("vote recorded",
				zap.Stringer("voter", voter),
				zap.Stringer("operator", operator),
				zap.Uint64("accumulated", accumulated),
			)
		})
		return l.chain.Emit(ctx, &VoteRecorded{
			Actor:       actor,
			Voter:       voter,
			Operator:    operator,
			Weight:      weight,
			Accumulated: accumulated,
		})
	})
}

// GrantPermissionToUseContribution lets [operator] spend up to [amount] of
// the pool once its accumulated weight has reached the quorum. The
// accumulator is reset by a successful grant.
func (l *Ledger) GrantPermissionToUseContribution(ctx context.Context, actor codec.Address, operator codec.Address, amount uint64) error {
	if operator.IsEmpty() {
		return ErrNullAddress
	}

	return l.chain.Run(ctx, l.guarded("GrantPermissionToUseContribution", actor), func(ctx context.Context, mu state.Mutable) error {
		cfg, err := l.config(ctx, mu)
		if err != nil {
			return err
		}
		fungible, err := l.fungible(cfg)
		if err != nil {
			return err
		}
		achieved, err := storage.GetAccumulator(ctx, mu, l.addr, operator)
		if err != nil {
			return err
		}
		if achieved < cfg.Quorum {
			return fmt.Errorf("%w: achieved=%d required=%d", ErrQuorumNotReached, achieved, cfg.Quorum)
		}
		if err := storage.SetAccumulator(ctx, mu, l.addr, operator, 0); err != nil {
			return err
		}
		if err := fungible.Approve(ctx, mu, l.addr, operator, amount); err != nil {
			return err
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.grants.Inc()
			l.log.Info("permission granted",
				zap.Stringer("operator", operator),
				zap.Uint64("amount", amount),
			)
		})
		return l.chain.Emit(ctx, &PermissionGranted{
			Actor:    actor,
			Operator: operator,
			Amount:   amount,
			Achieved: achieved,
			Required: cfg.Quorum,
		})
	})
}

// ResetQuorum zeroes [operator]'s accumulated weight.
func (l *Ledger) ResetQuorum(ctx context.Context, actor codec.Address, operator codec.Address) error {
	return l.chain.Run(ctx, l.guarded("ResetQuorum", actor), func(ctx context.Context, mu state.Mutable) error {
		prev, err := storage.GetAccumulator(ctx, mu, l.addr, operator)
		if err != nil {
			return err
		}
		if err := storage.SetAccumulator(ctx, mu, l.addr, operator, 0); err != nil {
			return err
		}
		return l.chain.Emit(ctx, &QuorumReset{
			Actor:    actor,
			Operator: operator,
			Previous: prev,
		})
	})
}
