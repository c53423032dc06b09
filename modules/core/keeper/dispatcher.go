package keeper

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/types"
)

// Validate decodes anyMsg and runs its stateless and stateful checks. State is
// never modified, including by application validation callbacks.
func (k *Keeper) Validate(ctx sdk.Context, anyMsg *codectypes.Any) error {
	msg, err := types.UnpackMsg(anyMsg)
	if err != nil {
		return err
	}

	return k.ValidateMsg(ctx, msg)
}

// Execute decodes anyMsg and applies it. The checks performed by Validate are
// repeated to derive the state transition, so Execute never applies an
// invalid message. Either every write of the message lands or none does.
func (k *Keeper) Execute(ctx sdk.Context, anyMsg *codectypes.Any) (types.MsgResponse, error) {
	msg, err := types.UnpackMsg(anyMsg)
	if err != nil {
		return nil, err
	}

	return k.ExecuteMsg(ctx, msg)
}

// Dispatch validates then executes a single message.
func (k *Keeper) Dispatch(ctx sdk.Context, anyMsg *codectypes.Any) (types.MsgResponse, error) {
	msg, err := types.UnpackMsg(anyMsg)
	if err != nil {
		return nil, err
	}

	if err := k.ValidateMsg(ctx, msg); err != nil {
		return nil, err
	}

	return k.ExecuteMsg(ctx, msg)
}

// DeliverMsgs processes the messages of a single transaction. Each message is
// validated and then executed before the next one is looked at, since a
// message may depend on the state written by the ones before it. The writes
// are committed only if every message succeeds.
func (k *Keeper) DeliverMsgs(ctx sdk.Context, anyMsgs []*codectypes.Any) ([]types.MsgResponse, error) {
	if len(anyMsgs) == 0 {
		return nil, errorsmod.Wrap(ibcerrors.ErrInvalidRequest, "no messages to deliver")
	}

	cacheCtx, writeFn := ctx.CacheContext()

	responses := make([]types.MsgResponse, 0, len(anyMsgs))
	for i, anyMsg := range anyMsgs {
		res, err := k.Dispatch(cacheCtx, anyMsg)
		if err != nil {
			return nil, errorsmod.Wrapf(err, "message %d", i)
		}

		responses = append(responses, res)
	}

	writeFn()

	return responses, nil
}

// ValidateMsg is Validate for an already decoded message.
func (k *Keeper) ValidateMsg(ctx sdk.Context, msg types.Msg) error {
	typeURL, handler, err := k.lookupHandler(msg)
	if err != nil {
		return err
	}

	if err := msg.ValidateBasic(); err != nil {
		return err
	}

	cacheCtx, _ := ctx.CacheContext()
	if _, err := handler.validate(cacheCtx, msg); err != nil {
		k.Logger(ctx).Error("message validation failed", "msg-type", typeURL, "error", err)
		return err
	}

	return nil
}

// ExecuteMsg is Execute for an already decoded message.
func (k *Keeper) ExecuteMsg(ctx sdk.Context, msg types.Msg) (types.MsgResponse, error) {
	typeURL, handler, err := k.lookupHandler(msg)
	if err != nil {
		return nil, err
	}

	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	cacheCtx, writeFn := ctx.CacheContext()

	intent, err := handler.validate(cacheCtx, msg)
	if err != nil {
		k.Logger(ctx).Error("message execution failed", "msg-type", typeURL, "error", err)
		return nil, err
	}

	res, err := handler.execute(cacheCtx, msg, intent)
	if err != nil {
		k.Logger(ctx).Error("message execution failed", "msg-type", typeURL, "error", err)
		return nil, err
	}

	writeFn()

	return res, nil
}

func (k *Keeper) lookupHandler(msg types.Msg) (string, msgHandler, error) {
	typeURL, err := types.MsgTypeURL(msg)
	if err != nil {
		return "", msgHandler{}, err
	}

	handler, ok := k.handlers[typeURL]
	if !ok {
		return "", msgHandler{}, errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "no handler registered for %s", typeURL)
	}

	return typeURL, handler, nil
}
