package contract

import (
	"context"

	"unfair_dao/contract/dao"
	"unfair_dao/sdk"
)

// -----------------------------------------------------------------------------
// Member Registry
// -----------------------------------------------------------------------------

// RegisterMember creates the member account of caller.
// It fails with ErrAlreadyExists when the wallet is already registered.
func (c *Contract) RegisterMember(ctx context.Context, caller sdk.Pubkey, args *RegisterMemberArgs) (*dao.Member, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	var member *dao.Member
	err := c.exec(ctx, caller, ActionRegisterMember, func(inv *invocation) error {
		addr, bump, err := MemberAddress(inv.programID, inv.caller())
		if err != nil {
			return err
		}
		member = &dao.Member{
			Bump:        bump,
			FairScore:   args.FairScore,
			SocialScore: args.SocialScore,
			WalletScore: args.WalletScore,
			Tier:        args.Tier,
			Username:    args.Username,
			XUsername:   args.XUsername,
			Wallet:      inv.caller(),
		}
		if err := createMember(inv.sess, addr, member); err != nil {
			return err
		}
		if err := appendIndex(inv.sess, MembersCount, idxMembers, addr); err != nil {
			return err
		}
		emitMemberRegisteredEvent(inv.sess, addr, member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// UpdateMember overwrites the scores and the tier. Username, x username,
// wallet and bump never change after registration.
func (c *Contract) UpdateMember(ctx context.Context, caller sdk.Pubkey, args *UpdateMemberArgs) (*dao.Member, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	var member *dao.Member
	err := c.exec(ctx, caller, ActionUpdateMember, func(inv *invocation) error {
		addr, m, err := inv.ownedMember(args.Member)
		if err != nil {
			return err
		}
		m.FairScore = args.FairScore
		m.SocialScore = args.SocialScore
		m.WalletScore = args.WalletScore
		m.Tier = args.Tier
		if err := saveMember(inv.sess, addr, m); err != nil {
			return err
		}
		emitMemberUpdatedEvent(inv.sess, addr, m)
		member = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// ownedMember loads the member at key, or the caller's own member account
// when key is zero, and checks that the caller owns it.
func (inv *invocation) ownedMember(key sdk.Pubkey) (sdk.Pubkey, *dao.Member, error) {
	if key.IsZero() {
		derived, _, err := MemberAddress(inv.programID, inv.caller())
		if err != nil {
			return sdk.Pubkey{}, nil, err
		}
		key = derived
	}
	m, err := loadMember(inv.sess, key)
	if err != nil {
		return sdk.Pubkey{}, nil, err
	}
	if m.Wallet != inv.caller() {
		return sdk.Pubkey{}, nil, fail(ErrUnauthorized, "member %s belongs to %s", key, m.Wallet)
	}
	return key, m, nil
}
