package keeper

import (
	metrics "github.com/hashicorp/go-metrics"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/02-client/types"
	"github.com/cosmos/ibc-core/modules/core/exported"
	coremetrics "github.com/cosmos/ibc-core/modules/core/metrics"
)

// CreateClient generates a new client identifier and isolated prefix store for the provided client state.
// The light client module is responsible for setting any client-specific data in the store via the Initialize method.
// This includes the client state, initial consensus state and any associated metadata.
func (k *Keeper) CreateClient(
	ctx sdk.Context, clientType string, clientState []byte, consensusState []byte,
) (string, error) {
	params := k.GetParams(ctx)
	if !params.IsAllowedClient(clientType) {
		return "", errorsmod.Wrapf(
			types.ErrInvalidClientType,
			"client state type %s is not registered in the allowlist", clientType,
		)
	}

	clientID := k.GenerateClientIdentifier(ctx, clientType)

	lightClientModule, err := k.GetLightClientModule(clientID)
	if err != nil {
		return "", err
	}

	if err := lightClientModule.Initialize(ctx, clientID, clientState, consensusState); err != nil {
		return "", err
	}

	if status := k.GetClientStatus(ctx, clientID); status != exported.Active {
		return "", errorsmod.Wrapf(types.ErrClientNotActive, "cannot create client (%s) with status %s", clientID, status)
	}

	initialHeight := lightClientModule.LatestHeight(ctx, clientID)
	k.setProcessedMetadata(ctx, clientID, []exported.Height{initialHeight})

	k.Logger(ctx).Info("client created at height", "client-id", clientID, "height", initialHeight.String())

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "create"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelClientType, clientType),
			telemetry.NewLabel(coremetrics.LabelClientID, clientID),
		},
	)

	emitCreateClientEvent(ctx, clientID, clientType, initialHeight)

	return clientID, nil
}

// UpdateClient updates the consensus state and the state root from a provided header.
// A client message which constitutes misbehaviour freezes the client instead.
func (k *Keeper) UpdateClient(ctx sdk.Context, clientID string, clientMsg exported.ClientMessage) error {
	if status := k.GetClientStatus(ctx, clientID); status != exported.Active {
		return errorsmod.Wrapf(types.ErrClientNotActive, "cannot update client (%s) with status %s", clientID, status)
	}

	clientType, _, err := types.ParseClientIdentifier(clientID)
	if err != nil {
		return errorsmod.Wrapf(types.ErrClientNotFound, "clientID (%s)", clientID)
	}

	lightClientModule, err := k.GetLightClientModule(clientID)
	if err != nil {
		return err
	}

	if err := lightClientModule.VerifyClientMessage(ctx, clientID, clientMsg); err != nil {
		return err
	}

	foundMisbehaviour := lightClientModule.CheckForMisbehaviour(ctx, clientID, clientMsg)
	if foundMisbehaviour {
		lightClientModule.UpdateStateOnMisbehaviour(ctx, clientID, clientMsg)

		k.Logger(ctx).Info("client frozen due to misbehaviour", "client-id", clientID)

		defer telemetry.IncrCounterWithLabels(
			[]string{"ibc", "client", "misbehaviour"},
			1,
			[]metrics.Label{
				telemetry.NewLabel(coremetrics.LabelClientType, clientType),
				telemetry.NewLabel(coremetrics.LabelClientID, clientID),
				telemetry.NewLabel(coremetrics.LabelMsgType, "update"),
			},
		)

		emitSubmitMisbehaviourEvent(ctx, clientID, clientType)

		return nil
	}

	consensusHeights := lightClientModule.UpdateState(ctx, clientID, clientMsg)
	k.setProcessedMetadata(ctx, clientID, consensusHeights)

	k.Logger(ctx).Info("client state updated", "client-id", clientID, "heights", consensusHeights)

	defer telemetry.IncrCounterWithLabels(
		[]string{"ibc", "client", "update"},
		1,
		[]metrics.Label{
			telemetry.NewLabel(coremetrics.LabelClientType, clientType),
			telemetry.NewLabel(coremetrics.LabelClientID, clientID),
			telemetry.NewLabel(coremetrics.LabelUpdateType, "msg"),
		},
	)

	emitUpdateClientEvent(ctx, clientID, clientType, consensusHeights)

	return nil
}
