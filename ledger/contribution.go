// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
)

// Contribute pulls [amount] of the contribution asset from the custody
// [account] into the pool and mints the same amount of contribution
// balance.
func (l *Ledger) Contribute(ctx context.Context, actor codec.Address, account codec.Address, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	credited := account
	if l.creditActor {
		credited = actor
	}

	return l.chain.Run(ctx, l.guarded("Contribute", actor), func(ctx context.Context, mu state.Mutable) error {
		cfg, err := l.config(ctx, mu)
		if err != nil {
			return err
		}
		fungible, err := l.fungible(cfg)
		if err != nil {
			return err
		}
		m, err := storage.GetMember(ctx, mu, l.addr, account)
		if err != nil {
			return err
		}
		if m.State != storage.Active {
			return fmt.Errorf("%w: %s is %s", ErrMemberNotActive, account, m.State)
		}

		if err := storage.MintContribution(ctx, mu, l.addr, credited, amount); err != nil {
			return err
		}
		if err := fungible.TransferFrom(ctx, mu, l.addr, account, l.addr, amount); err != nil {
			return err
		}
		supply, err := storage.GetContributionSupply(ctx, mu, l.addr)
		if err != nil {
			return err
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.contributed.Add(float64(amount))
			l.log.Debug("contribution made",
				zap.Stringer("account", account),
				zap.Stringer("credited", credited),
				zap.Uint64("amount", amount),
			)
		})
		return l.chain.Emit(ctx, &ContributionMade{
			Actor:    actor,
			Account:  account,
			Credited: credited,
			Amount:   amount,
			Supply:   supply,
		})
	})
}
