// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ava-labs/groupsavings/codec"
	"github.com/ava-labs/groupsavings/factory"
	"github.com/ava-labs/groupsavings/state"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/utils"
)

// RegisterMember activates the custody account derived from [identityRef],
// deploying it first if needed, and returns its address.
func (l *Ledger) RegisterMember(ctx context.Context, actor codec.Address, identityRef string, agreementRef string) (codec.Address, error) {
	if len(identityRef) == 0 || len(agreementRef) == 0 {
		return codec.EmptyAddress, ErrEmptyReference
	}
	identityKey := utils.ToID([]byte(identityRef))

	var account codec.Address
	err := l.chain.Run(ctx, l.guarded("RegisterMember", actor), func(ctx context.Context, mu state.Mutable) error {
		cfg, err := l.config(ctx, mu)
		if err != nil {
			return err
		}
		if cfg.Asset.IsEmpty() {
			return ErrAssetNotSet
		}
		account = factory.ComputeAddress(l.addr, cfg.Asset, identityKey)

		m, err := storage.GetMember(ctx, mu, l.addr, account)
		if err != nil {
			return err
		}
		switch m.State {
		case storage.Active:
			return fmt.Errorf("%w: %s", ErrAlreadyActive, account)
		case storage.Terminated:
			return fmt.Errorf("%w: %s", ErrMemberTerminated, account)
		}

		_, deployed, err := storage.GetCustodyAccount(ctx, mu, account)
		if err != nil {
			return err
		}
		if !deployed {
			if _, err := l.factory.Deploy(ctx, l.addr, cfg.Asset, identityKey); err != nil {
				return err
			}
		}
		if err := storage.SetMember(ctx, mu, l.addr, account, &storage.Member{
			State:        storage.Active,
			IdentityKey:  identityKey,
			AgreementRef: agreementRef,
		}); err != nil {
			return err
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.registrations.Inc()
			l.log.Info("registered member",
				zap.Stringer("account", account),
				zap.String("agreement", agreementRef),
			)
		})
		return l.chain.Emit(ctx, &MembershipActivated{
			Actor:        actor,
			Account:      account,
			IdentityKey:  identityKey,
			AgreementRef: agreementRef,
		})
	})
	if err != nil {
		return codec.EmptyAddress, err
	}
	return account, nil
}

// TransferMembership moves the whole contribution balance of [from] to [to],
// activating [to] and retiring [from].
func (l *Ledger) TransferMembership(ctx context.Context, actor codec.Address, from codec.Address, to codec.Address, agreementRef string) error {
	if from.IsEmpty() || to.IsEmpty() {
		return ErrNullAddress
	}
	if len(agreementRef) == 0 {
		return ErrEmptyReference
	}
	if from == to {
		return ErrSelfTransfer
	}

	var moved uint64
	return l.chain.Run(ctx, l.guarded("TransferMembership", actor), func(ctx context.Context, mu state.Mutable) error {
		fromMember, err := storage.GetMember(ctx, mu, l.addr, from)
		if err != nil {
			return err
		}
		if fromMember.State != storage.Active {
			return fmt.Errorf("%w: %s is %s", ErrMemberNotActive, from, fromMember.State)
		}
		toMember, err := storage.GetMember(ctx, mu, l.addr, to)
		if err != nil {
			return err
		}
		switch toMember.State {
		case storage.Active:
			return fmt.Errorf("%w: %s", ErrAlreadyActive, to)
		case storage.Terminated:
			return fmt.Errorf("%w: %s", ErrMemberTerminated, to)
		}

		moved, err = storage.GetContributionBalance(ctx, mu, l.addr, from)
		if err != nil {
			return err
		}
		if moved > 0 {
			if err := storage.MoveContribution(ctx, mu, l.addr, from, to, moved); err != nil {
				return err
			}
		}

		// A destination that is itself a custody account keeps its identity.
		identityKey := toMember.IdentityKey
		if acct, ok, err := storage.GetCustodyAccount(ctx, mu, to); err != nil {
			return err
		} else if ok {
			identityKey = acct.IdentityKey
		}
		if err := storage.SetMember(ctx, mu, l.addr, to, &storage.Member{
			State:        storage.Active,
			IdentityKey:  identityKey,
			AgreementRef: agreementRef,
		}); err != nil {
			return err
		}
		fromMember.State = storage.Transferred
		fromMember.AgreementRef = agreementRef
		if err := storage.SetMember(ctx, mu, l.addr, from, fromMember); err != nil {
			return err
		}
		l.chain.OnCommit(ctx, func() {
			l.log.Info("transferred membership",
				zap.Stringer("from", from),
				zap.Stringer("to", to),
				zap.Uint64("amount", moved),
			)
		})
		return l.chain.Emit(ctx, &MembershipTransferred{
			Actor:        actor,
			From:         from,
			To:           to,
			Amount:       moved,
			AgreementRef: agreementRef,
		})
	})
}

// TerminateMembership burns any balance left on [account] and retires it
// permanently.
func (l *Ledger) TerminateMembership(ctx context.Context, actor codec.Address, account codec.Address, agreementRef string) error {
	if account.IsEmpty() {
		return ErrNullAddress
	}
	if len(agreementRef) == 0 {
		return ErrEmptyReference
	}

	var burned uint64
	return l.chain.Run(ctx, l.guarded("TerminateMembership", actor), func(ctx context.Context, mu state.Mutable) error {
		m, err := storage.GetMember(ctx, mu, l.addr, account)
		if err != nil {
			return err
		}
		if m.State != storage.Active {
			return fmt.Errorf("%w: %s is %s", ErrMemberNotActive, account, m.State)
		}
		burned, err = storage.GetContributionBalance(ctx, mu, l.addr, account)
		if err != nil {
			return err
		}
		if burned > 0 {
			if err := storage.BurnContribution(ctx, mu, l.addr, account, burned); err != nil {
				return err
			}
		}
		m.State = storage.Terminated
		m.AgreementRef = agreementRef
		if err := storage.SetMember(ctx, mu, l.addr, account, m); err != nil {
			return err
		}
		l.chain.OnCommit(ctx, func() {
			l.metrics.terminations.Inc()
			l.log.Info("terminated membership",
				zap.Stringer("account", account),
				zap.Uint64("burned", burned),
			)
		})
		return l.chain.Emit(ctx, &MembershipTerminated{
			Actor:        actor,
			Account:      account,
			Burned:       burned,
			AgreementRef: agreementRef,
		})
	})
}
