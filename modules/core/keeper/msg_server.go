package keeper

import (
	"errors"

	metrics "github.com/hashicorp/go-metrics"

	errorsmod "cosmossdk.io/errors"

	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"

	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	porttypes "github.com/cosmos/ibc-core/modules/core/05-port/types"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
	"github.com/cosmos/ibc-core/modules/core/exported"
	coremetrics "github.com/cosmos/ibc-core/modules/core/metrics"
	"github.com/cosmos/ibc-core/modules/core/types"
)

// msgHandler is the validate/execute pair of a single message type. validate
// must not write state; whatever it derives is handed to execute as the intent.
type msgHandler struct {
	validate func(ctx sdk.Context, msg types.Msg) (any, error)
	execute  func(ctx sdk.Context, msg types.Msg, intent any) (types.MsgResponse, error)
}

func newMsgHandler[M types.Msg, I any, R types.MsgResponse](
	validate func(sdk.Context, M) (I, error),
	execute func(sdk.Context, M, I) (R, error),
) msgHandler {
	return msgHandler{
		validate: func(ctx sdk.Context, msg types.Msg) (any, error) {
			m, ok := msg.(M)
			if !ok {
				return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", *new(M), msg)
			}
			return validate(ctx, m)
		},
		execute: func(ctx sdk.Context, msg types.Msg, intent any) (types.MsgResponse, error) {
			m, ok := msg.(M)
			if !ok {
				return nil, errorsmod.Wrapf(ibcerrors.ErrInvalidType, "expected %T, got %T", *new(M), msg)
			}
			i, ok := intent.(I)
			if !ok {
				return nil, errorsmod.Wrapf(ibcerrors.ErrLogic, "unexpected intent %T for %T", intent, msg)
			}
			res, err := execute(ctx, m, i)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
	}
}

func (k *Keeper) msgHandlers() map[string]msgHandler {
	return map[string]msgHandler{
		clienttypes.TypeURLMsgCreateClient: newMsgHandler(k.validateCreateClient, k.executeCreateClient),
		clienttypes.TypeURLMsgUpdateClient: newMsgHandler(k.validateUpdateClient, k.executeUpdateClient),

		connectiontypes.TypeURLMsgConnectionOpenInit:    newMsgHandler(k.validateConnectionOpenInit, k.executeConnectionOpenInit),
		connectiontypes.TypeURLMsgConnectionOpenTry:     newMsgHandler(k.validateConnectionOpenTry, k.executeConnectionOpenTry),
		connectiontypes.TypeURLMsgConnectionOpenAck:     newMsgHandler(k.validateConnectionOpenAck, k.executeConnectionOpenAck),
		connectiontypes.TypeURLMsgConnectionOpenConfirm: newMsgHandler(k.validateConnectionOpenConfirm, k.executeConnectionOpenConfirm),

		channeltypes.TypeURLMsgChannelOpenInit:     newMsgHandler(k.validateChannelOpenInit, k.executeChannelOpenInit),
		channeltypes.TypeURLMsgChannelOpenTry:      newMsgHandler(k.validateChannelOpenTry, k.executeChannelOpenTry),
		channeltypes.TypeURLMsgChannelOpenAck:      newMsgHandler(k.validateChannelOpenAck, k.executeChannelOpenAck),
		channeltypes.TypeURLMsgChannelOpenConfirm:  newMsgHandler(k.validateChannelOpenConfirm, k.executeChannelOpenConfirm),
		channeltypes.TypeURLMsgChannelCloseInit:    newMsgHandler(k.validateChannelCloseInit, k.executeChannelCloseInit),
		channeltypes.TypeURLMsgChannelCloseConfirm: newMsgHandler(k.validateChannelCloseConfirm, k.executeChannelCloseConfirm),

		channeltypes.TypeURLMsgRecvPacket:      newMsgHandler(k.validateRecvPacket, k.executeRecvPacket),
		channeltypes.TypeURLMsgAcknowledgement: newMsgHandler(k.validateAcknowledgement, k.executeAcknowledgement),
		channeltypes.TypeURLMsgTimeout:         newMsgHandler(k.validateTimeout, k.executeTimeout),
		channeltypes.TypeURLMsgTimeoutOnClose:  newMsgHandler(k.validateTimeoutOnClose, k.executeTimeoutOnClose),
	}
}

// channelOpenIntent carries the identifier and application version chosen
// while validating an OpenInit or OpenTry.
type channelOpenIntent struct {
	cbs       porttypes.IBCModule
	channelID string
	version   string
}

// packetIntent carries what a packet message needs to execute. A noop intent
// marks a redundant relay: execute reports NOOP and changes nothing.
type packetIntent struct {
	cbs            porttypes.IBCModule
	channelVersion string
	relayer        sdk.AccAddress
	noop           bool
}

func (k *Keeper) validateCreateClient(ctx sdk.Context, msg *clienttypes.MsgCreateClient) (string, error) {
	clientType, _, found := k.ClientKeeper.GetRouter().RouteByClientStateTypeURL(msg.ClientState.TypeUrl)
	if !found {
		return "", errorsmod.Wrapf(clienttypes.ErrRouteNotFound, "no light client module accepts client state %s", msg.ClientState.TypeUrl)
	}

	if !k.ClientKeeper.GetParams(ctx).IsAllowedClient(clientType) {
		return "", errorsmod.Wrapf(clienttypes.ErrInvalidClientType, "client state type %s is not registered in the allowlist", clientType)
	}

	return clientType, nil
}

func (k *Keeper) executeCreateClient(ctx sdk.Context, msg *clienttypes.MsgCreateClient, clientType string) (*clienttypes.MsgCreateClientResponse, error) {
	clientID, err := k.ClientKeeper.CreateClient(ctx, clientType, msg.ClientState.Value, msg.ConsensusState.Value)
	if err != nil {
		return nil, err
	}

	return &clienttypes.MsgCreateClientResponse{ClientId: clientID}, nil
}

func (k *Keeper) validateUpdateClient(ctx sdk.Context, msg *clienttypes.MsgUpdateClient) (exported.ClientMessage, error) {
	if status := k.ClientKeeper.GetClientStatus(ctx, msg.ClientId); status != exported.Active {
		return nil, errorsmod.Wrapf(clienttypes.ErrClientNotActive, "cannot update client (%s) with status %s", msg.ClientId, status)
	}

	clientModule, err := k.ClientKeeper.GetLightClientModule(msg.ClientId)
	if err != nil {
		return nil, err
	}

	clientMsg, err := clientModule.UnmarshalClientMessage(msg.ClientMessage.TypeUrl, msg.ClientMessage.Value)
	if err != nil {
		return nil, err
	}

	if err := clientMsg.ValidateBasic(); err != nil {
		return nil, err
	}

	if err := clientModule.VerifyClientMessage(ctx, msg.ClientId, clientMsg); err != nil {
		return nil, err
	}

	return clientMsg, nil
}

func (k *Keeper) executeUpdateClient(ctx sdk.Context, msg *clienttypes.MsgUpdateClient, clientMsg exported.ClientMessage) (*clienttypes.MsgUpdateClientResponse, error) {
	if err := k.ClientKeeper.UpdateClient(ctx, msg.ClientId, clientMsg); err != nil {
		return nil, err
	}

	return &clienttypes.MsgUpdateClientResponse{}, nil
}

func (k *Keeper) validateConnectionOpenInit(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenInit) ([]*connectiontypes.Version, error) {
	versions, err := k.ConnectionKeeper.ConnOpenInit(ctx, msg.ClientId, msg.Version)
	if err != nil {
		return nil, errorsmod.Wrap(err, "connection handshake open init failed")
	}

	return versions, nil
}

func (k *Keeper) executeConnectionOpenInit(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenInit, versions []*connectiontypes.Version) (*connectiontypes.MsgConnectionOpenInitResponse, error) {
	k.ConnectionKeeper.WriteOpenInitConnection(ctx, msg.ClientId, msg.Counterparty, versions, msg.DelayPeriod)
	return &connectiontypes.MsgConnectionOpenInitResponse{}, nil
}

func (k *Keeper) validateConnectionOpenTry(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenTry) (*connectiontypes.Version, error) {
	version, err := k.ConnectionKeeper.ConnOpenTry(
		ctx, msg.Counterparty, msg.DelayPeriod, msg.ClientId, msg.ClientState,
		msg.CounterpartyVersions, msg.ProofInit, msg.ProofClient, msg.ProofConsensus,
		msg.ProofHeight, msg.ConsensusHeight,
	)
	if err != nil {
		return nil, errorsmod.Wrap(err, "connection handshake open try failed")
	}

	return version, nil
}

func (k *Keeper) executeConnectionOpenTry(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenTry, version *connectiontypes.Version) (*connectiontypes.MsgConnectionOpenTryResponse, error) {
	k.ConnectionKeeper.WriteOpenTryConnection(ctx, msg.ClientId, msg.Counterparty, version, msg.DelayPeriod)
	return &connectiontypes.MsgConnectionOpenTryResponse{}, nil
}

func (k *Keeper) validateConnectionOpenAck(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenAck) (struct{}, error) {
	if err := k.ConnectionKeeper.ConnOpenAck(
		ctx, msg.ConnectionId, msg.ClientState, msg.Version, msg.CounterpartyConnectionId,
		msg.ProofTry, msg.ProofClient, msg.ProofConsensus,
		msg.ProofHeight, msg.ConsensusHeight,
	); err != nil {
		return struct{}{}, errorsmod.Wrap(err, "connection handshake open ack failed")
	}

	return struct{}{}, nil
}

func (k *Keeper) executeConnectionOpenAck(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenAck, _ struct{}) (*connectiontypes.MsgConnectionOpenAckResponse, error) {
	k.ConnectionKeeper.WriteOpenAckConnection(ctx, msg.ConnectionId, msg.Version, msg.CounterpartyConnectionId)
	return &connectiontypes.MsgConnectionOpenAckResponse{}, nil
}

func (k *Keeper) validateConnectionOpenConfirm(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenConfirm) (struct{}, error) {
	if err := k.ConnectionKeeper.ConnOpenConfirm(ctx, msg.ConnectionId, msg.ProofAck, msg.ProofHeight); err != nil {
		return struct{}{}, errorsmod.Wrap(err, "connection handshake open confirm failed")
	}

	return struct{}{}, nil
}

func (k *Keeper) executeConnectionOpenConfirm(ctx sdk.Context, msg *connectiontypes.MsgConnectionOpenConfirm, _ struct{}) (*connectiontypes.MsgConnectionOpenConfirmResponse, error) {
	k.ConnectionKeeper.WriteOpenConfirmConnection(ctx, msg.ConnectionId)
	return &connectiontypes.MsgConnectionOpenConfirmResponse{}, nil
}

func (k *Keeper) validateChannelOpenInit(ctx sdk.Context, msg *channeltypes.MsgChannelOpenInit) (channelOpenIntent, error) {
	cbs, err := k.PortKeeper.Route(msg.PortId)
	if err != nil {
		return channelOpenIntent{}, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	channelID, err := k.ChannelKeeper.ChanOpenInit(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		return channelOpenIntent{}, errorsmod.Wrap(err, "channel handshake open init failed")
	}

	version, err := cbs.OnChanOpenInitValidate(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, channelID,
		msg.Channel.Counterparty, msg.Channel.Version,
	)
	if err != nil {
		return channelOpenIntent{}, errorsmod.Wrapf(err, "channel open init callback failed for port ID: %s, channel ID: %s", msg.PortId, channelID)
	}

	return channelOpenIntent{cbs: cbs, channelID: channelID, version: version}, nil
}

func (k *Keeper) executeChannelOpenInit(ctx sdk.Context, msg *channeltypes.MsgChannelOpenInit, intent channelOpenIntent) (*channeltypes.MsgChannelOpenInitResponse, error) {
	k.ChannelKeeper.WriteOpenInitChannel(
		ctx, msg.PortId, intent.channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops,
		msg.Channel.Counterparty, intent.version,
	)

	if err := intent.cbs.OnChanOpenInitExecute(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, intent.channelID,
		msg.Channel.Counterparty, intent.version,
	); err != nil {
		return nil, errorsmod.Wrapf(err, "channel open init callback failed for port ID: %s, channel ID: %s", msg.PortId, intent.channelID)
	}

	return &channeltypes.MsgChannelOpenInitResponse{
		ChannelId: intent.channelID,
		Version:   intent.version,
	}, nil
}

func (k *Keeper) validateChannelOpenTry(ctx sdk.Context, msg *channeltypes.MsgChannelOpenTry) (channelOpenIntent, error) {
	cbs, err := k.PortKeeper.Route(msg.PortId)
	if err != nil {
		return channelOpenIntent{}, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	channelID, err := k.ChannelKeeper.ChanOpenTry(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId,
		msg.Channel.Counterparty, msg.CounterpartyVersion, msg.ProofInit, msg.ProofHeight,
	)
	if err != nil {
		return channelOpenIntent{}, errorsmod.Wrap(err, "channel handshake open try failed")
	}

	version, err := cbs.OnChanOpenTryValidate(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, channelID,
		msg.Channel.Counterparty, msg.CounterpartyVersion,
	)
	if err != nil {
		return channelOpenIntent{}, errorsmod.Wrapf(err, "channel open try callback failed for port ID: %s, channel ID: %s", msg.PortId, channelID)
	}

	return channelOpenIntent{cbs: cbs, channelID: channelID, version: version}, nil
}

func (k *Keeper) executeChannelOpenTry(ctx sdk.Context, msg *channeltypes.MsgChannelOpenTry, intent channelOpenIntent) (*channeltypes.MsgChannelOpenTryResponse, error) {
	k.ChannelKeeper.WriteOpenTryChannel(
		ctx, msg.PortId, intent.channelID, msg.Channel.Ordering, msg.Channel.ConnectionHops,
		msg.Channel.Counterparty, intent.version,
	)

	if err := intent.cbs.OnChanOpenTryExecute(
		ctx, msg.Channel.Ordering, msg.Channel.ConnectionHops, msg.PortId, intent.channelID,
		msg.Channel.Counterparty, intent.version,
	); err != nil {
		return nil, errorsmod.Wrapf(err, "channel open try callback failed for port ID: %s, channel ID: %s", msg.PortId, intent.channelID)
	}

	return &channeltypes.MsgChannelOpenTryResponse{
		ChannelId: intent.channelID,
		Version:   intent.version,
	}, nil
}

func (k *Keeper) validateChannelOpenAck(ctx sdk.Context, msg *channeltypes.MsgChannelOpenAck) (porttypes.IBCModule, error) {
	cbs, err := k.PortKeeper.Route(msg.PortId)
	if err != nil {
		return nil, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	if err := k.ChannelKeeper.ChanOpenAck(
		ctx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion, msg.CounterpartyChannelId,
		msg.ProofTry, msg.ProofHeight,
	); err != nil {
		return nil, errorsmod.Wrap(err, "channel handshake open ack failed")
	}

	if err := cbs.OnChanOpenAckValidate(ctx, msg.PortId, msg.ChannelId, msg.CounterpartyChannelId, msg.CounterpartyVersion); err != nil {
		return nil, errorsmod.Wrapf(err, "channel open ack callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	return cbs, nil
}

func (k *Keeper) executeChannelOpenAck(ctx sdk.Context, msg *channeltypes.MsgChannelOpenAck, cbs porttypes.IBCModule) (*channeltypes.MsgChannelOpenAckResponse, error) {
	k.ChannelKeeper.WriteOpenAckChannel(ctx, msg.PortId, msg.ChannelId, msg.CounterpartyVersion, msg.CounterpartyChannelId)

	if err := cbs.OnChanOpenAckExecute(ctx, msg.PortId, msg.ChannelId, msg.CounterpartyChannelId, msg.CounterpartyVersion); err != nil {
		return nil, errorsmod.Wrapf(err, "channel open ack callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	return &channeltypes.MsgChannelOpenAckResponse{}, nil
}

func (k *Keeper) validateChannelOpenConfirm(ctx sdk.Context, msg *channeltypes.MsgChannelOpenConfirm) (porttypes.IBCModule, error) {
	cbs, err := k.PortKeeper.Route(msg.PortId)
	if err != nil {
		return nil, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	if err := k.ChannelKeeper.ChanOpenConfirm(ctx, msg.PortId, msg.ChannelId, msg.ProofAck, msg.ProofHeight); err != nil {
		return nil, errorsmod.Wrap(err, "channel handshake open confirm failed")
	}

	if err := cbs.OnChanOpenConfirmValidate(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrapf(err, "channel open confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	return cbs, nil
}

func (k *Keeper) executeChannelOpenConfirm(ctx sdk.Context, msg *channeltypes.MsgChannelOpenConfirm, cbs porttypes.IBCModule) (*channeltypes.MsgChannelOpenConfirmResponse, error) {
	k.ChannelKeeper.WriteOpenConfirmChannel(ctx, msg.PortId, msg.ChannelId)

	if err := cbs.OnChanOpenConfirmExecute(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrapf(err, "channel open confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	return &channeltypes.MsgChannelOpenConfirmResponse{}, nil
}

func (k *Keeper) validateChannelCloseInit(ctx sdk.Context, msg *channeltypes.MsgChannelCloseInit) (porttypes.IBCModule, error) {
	cbs, err := k.PortKeeper.Route(msg.PortId)
	if err != nil {
		return nil, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	if err := k.ChannelKeeper.ChanCloseInit(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrap(err, "channel handshake close init failed")
	}

	if err := cbs.OnChanCloseInitValidate(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrapf(err, "channel close init callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	return cbs, nil
}

func (k *Keeper) executeChannelCloseInit(ctx sdk.Context, msg *channeltypes.MsgChannelCloseInit, cbs porttypes.IBCModule) (*channeltypes.MsgChannelCloseInitResponse, error) {
	if err := cbs.OnChanCloseInitExecute(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrapf(err, "channel close init callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	k.ChannelKeeper.WriteCloseChannel(ctx, msg.PortId, msg.ChannelId, channeltypes.EventTypeChannelCloseInit)

	return &channeltypes.MsgChannelCloseInitResponse{}, nil
}

func (k *Keeper) validateChannelCloseConfirm(ctx sdk.Context, msg *channeltypes.MsgChannelCloseConfirm) (porttypes.IBCModule, error) {
	cbs, err := k.PortKeeper.Route(msg.PortId)
	if err != nil {
		return nil, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	if err := k.ChannelKeeper.ChanCloseConfirm(ctx, msg.PortId, msg.ChannelId, msg.ProofInit, msg.ProofHeight); err != nil {
		return nil, errorsmod.Wrap(err, "channel handshake close confirm failed")
	}

	if err := cbs.OnChanCloseConfirmValidate(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrapf(err, "channel close confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	return cbs, nil
}

func (k *Keeper) executeChannelCloseConfirm(ctx sdk.Context, msg *channeltypes.MsgChannelCloseConfirm, cbs porttypes.IBCModule) (*channeltypes.MsgChannelCloseConfirmResponse, error) {
	if err := cbs.OnChanCloseConfirmExecute(ctx, msg.PortId, msg.ChannelId); err != nil {
		return nil, errorsmod.Wrapf(err, "channel close confirm callback failed for port ID: %s, channel ID: %s", msg.PortId, msg.ChannelId)
	}

	k.ChannelKeeper.WriteCloseChannel(ctx, msg.PortId, msg.ChannelId, channeltypes.EventTypeChannelCloseConfirm)

	return &channeltypes.MsgChannelCloseConfirmResponse{}, nil
}

func (k *Keeper) validateRecvPacket(ctx sdk.Context, msg *channeltypes.MsgRecvPacket) (packetIntent, error) {
	intent, err := k.newPacketIntent(ctx, msg.Signer, msg.Packet.DestinationPort, msg.Packet.DestinationChannel)
	if err != nil {
		return packetIntent{}, err
	}

	err = k.ChannelKeeper.RecvPacket(ctx, msg.Packet, msg.ProofCommitment, msg.ProofHeight)
	switch {
	case errors.Is(err, channeltypes.ErrNoOpMsg):
		intent.noop = true
		return intent, nil
	case err != nil:
		return packetIntent{}, errorsmod.Wrap(err, "receive packet verification failed")
	}

	return intent, nil
}

// executeRecvPacket records the receipt and runs the application callback in
// a cache context. The callback's state writes are kept only if it returns no
// acknowledgement or a successful one; otherwise its events are re-emitted as
// error events. A returned acknowledgement is written synchronously.
func (k *Keeper) executeRecvPacket(ctx sdk.Context, msg *channeltypes.MsgRecvPacket, intent packetIntent) (*channeltypes.MsgRecvPacketResponse, error) {
	if intent.noop {
		k.logNoOp(ctx, channeltypes.EventTypeRecvPacket, msg.Packet)
		return &channeltypes.MsgRecvPacketResponse{Result: channeltypes.NOOP}, nil
	}

	k.ChannelKeeper.WriteRecvPacket(ctx, msg.Packet)

	cacheCtx, writeFn := ctx.CacheContext()
	ack := intent.cbs.OnRecvPacketExecute(cacheCtx, intent.channelVersion, msg.Packet, intent.relayer)
	if ack == nil || ack.Success() {
		writeFn()
	} else {
		ctx.EventManager().EmitEvents(types.ConvertToErrorEvents(cacheCtx.EventManager().Events()))
	}

	// a nil acknowledgement means the application acknowledges asynchronously
	if ack != nil {
		if err := k.ChannelKeeper.WriteAcknowledgement(ctx, msg.Packet, ack); err != nil {
			return nil, err
		}
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", channeltypes.EventTypeRecvPacket},
		1,
		packetLabels(msg.Packet),
	)

	return &channeltypes.MsgRecvPacketResponse{Result: channeltypes.SUCCESS}, nil
}

func (k *Keeper) validateAcknowledgement(ctx sdk.Context, msg *channeltypes.MsgAcknowledgement) (packetIntent, error) {
	intent, err := k.newPacketIntent(ctx, msg.Signer, msg.Packet.SourcePort, msg.Packet.SourceChannel)
	if err != nil {
		return packetIntent{}, err
	}

	err = k.ChannelKeeper.AcknowledgePacket(ctx, msg.Packet, msg.Acknowledgement, msg.ProofAcked, msg.ProofHeight)
	switch {
	case errors.Is(err, channeltypes.ErrNoOpMsg):
		intent.noop = true
		return intent, nil
	case err != nil:
		return packetIntent{}, errorsmod.Wrap(err, "acknowledge packet verification failed")
	}

	if err := intent.cbs.OnAcknowledgementPacketValidate(ctx, intent.channelVersion, msg.Packet, msg.Acknowledgement, intent.relayer); err != nil {
		return packetIntent{}, errorsmod.Wrap(err, "acknowledge packet callback failed")
	}

	return intent, nil
}

func (k *Keeper) executeAcknowledgement(ctx sdk.Context, msg *channeltypes.MsgAcknowledgement, intent packetIntent) (*channeltypes.MsgAcknowledgementResponse, error) {
	if intent.noop {
		k.logNoOp(ctx, channeltypes.EventTypeAcknowledgePacket, msg.Packet)
		return &channeltypes.MsgAcknowledgementResponse{Result: channeltypes.NOOP}, nil
	}

	k.ChannelKeeper.WriteAcknowledgePacket(ctx, msg.Packet)

	if err := intent.cbs.OnAcknowledgementPacketExecute(ctx, intent.channelVersion, msg.Packet, msg.Acknowledgement, intent.relayer); err != nil {
		return nil, errorsmod.Wrap(err, "acknowledge packet callback failed")
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", channeltypes.EventTypeAcknowledgePacket},
		1,
		packetLabels(msg.Packet),
	)

	return &channeltypes.MsgAcknowledgementResponse{Result: channeltypes.SUCCESS}, nil
}

func (k *Keeper) validateTimeout(ctx sdk.Context, msg *channeltypes.MsgTimeout) (packetIntent, error) {
	intent, err := k.newPacketIntent(ctx, msg.Signer, msg.Packet.SourcePort, msg.Packet.SourceChannel)
	if err != nil {
		return packetIntent{}, err
	}

	err = k.ChannelKeeper.TimeoutPacket(ctx, msg.Packet, msg.ProofUnreceived, msg.ProofHeight, msg.NextSequenceRecv)
	switch {
	case errors.Is(err, channeltypes.ErrNoOpMsg):
		intent.noop = true
		return intent, nil
	case err != nil:
		return packetIntent{}, errorsmod.Wrap(err, "timeout packet verification failed")
	}

	if err := intent.cbs.OnTimeoutPacketValidate(ctx, intent.channelVersion, msg.Packet, intent.relayer); err != nil {
		return packetIntent{}, errorsmod.Wrap(err, "timeout packet callback failed")
	}

	return intent, nil
}

func (k *Keeper) executeTimeout(ctx sdk.Context, msg *channeltypes.MsgTimeout, intent packetIntent) (*channeltypes.MsgTimeoutResponse, error) {
	if intent.noop {
		k.logNoOp(ctx, channeltypes.EventTypeTimeoutPacket, msg.Packet)
		return &channeltypes.MsgTimeoutResponse{Result: channeltypes.NOOP}, nil
	}

	k.ChannelKeeper.TimeoutExecuted(ctx, msg.Packet)

	if err := intent.cbs.OnTimeoutPacketExecute(ctx, intent.channelVersion, msg.Packet, intent.relayer); err != nil {
		return nil, errorsmod.Wrap(err, "timeout packet callback failed")
	}

	timeoutType := "height"
	if msg.Packet.TimeoutHeight.IsZero() {
		timeoutType = "timestamp"
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", channeltypes.EventTypeTimeoutPacket},
		1,
		append(packetLabels(msg.Packet), telemetry.NewLabel(coremetrics.LabelTimeoutType, timeoutType)),
	)

	return &channeltypes.MsgTimeoutResponse{Result: channeltypes.SUCCESS}, nil
}

func (k *Keeper) validateTimeoutOnClose(ctx sdk.Context, msg *channeltypes.MsgTimeoutOnClose) (packetIntent, error) {
	intent, err := k.newPacketIntent(ctx, msg.Signer, msg.Packet.SourcePort, msg.Packet.SourceChannel)
	if err != nil {
		return packetIntent{}, err
	}

	err = k.ChannelKeeper.TimeoutOnClose(ctx, msg.Packet, msg.ProofUnreceived, msg.ProofClose, msg.ProofHeight, msg.NextSequenceRecv)
	switch {
	case errors.Is(err, channeltypes.ErrNoOpMsg):
		intent.noop = true
		return intent, nil
	case err != nil:
		return packetIntent{}, errorsmod.Wrap(err, "timeout on close packet verification failed")
	}

	// the application processes a timeout on close exactly like a timeout
	if err := intent.cbs.OnTimeoutPacketValidate(ctx, intent.channelVersion, msg.Packet, intent.relayer); err != nil {
		return packetIntent{}, errorsmod.Wrap(err, "timeout on close callback failed")
	}

	return intent, nil
}

func (k *Keeper) executeTimeoutOnClose(ctx sdk.Context, msg *channeltypes.MsgTimeoutOnClose, intent packetIntent) (*channeltypes.MsgTimeoutOnCloseResponse, error) {
	if intent.noop {
		k.logNoOp(ctx, channeltypes.EventTypeTimeoutPacketOnClose, msg.Packet)
		return &channeltypes.MsgTimeoutOnCloseResponse{Result: channeltypes.NOOP}, nil
	}

	k.ChannelKeeper.TimeoutOnCloseExecuted(ctx, msg.Packet)

	if err := intent.cbs.OnTimeoutPacketExecute(ctx, intent.channelVersion, msg.Packet, intent.relayer); err != nil {
		return nil, errorsmod.Wrap(err, "timeout on close callback failed")
	}

	defer telemetry.IncrCounterWithLabels(
		[]string{"tx", "msg", "ibc", "timeout-on-close"},
		1,
		append(packetLabels(msg.Packet), telemetry.NewLabel(coremetrics.LabelTimeoutType, "channel-closed")),
	)

	return &channeltypes.MsgTimeoutOnCloseResponse{Result: channeltypes.SUCCESS}, nil
}

// newPacketIntent resolves the relayer address, the application bound to the
// local port and the version of the local channel end.
func (k *Keeper) newPacketIntent(ctx sdk.Context, signer, portID, channelID string) (packetIntent, error) {
	relayer, err := sdk.AccAddressFromBech32(signer)
	if err != nil {
		return packetIntent{}, errorsmod.Wrapf(ibcerrors.ErrInvalidAddress, "invalid relayer address: %s", err)
	}

	cbs, err := k.PortKeeper.Route(portID)
	if err != nil {
		return packetIntent{}, errorsmod.Wrap(err, "could not retrieve module from port-id")
	}

	channelVersion, found := k.ChannelKeeper.GetAppVersion(ctx, portID, channelID)
	if !found {
		return packetIntent{}, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "port ID (%s) channel ID (%s)", portID, channelID)
	}

	return packetIntent{
		cbs:            cbs,
		channelVersion: channelVersion,
		relayer:        relayer,
	}, nil
}

func (k *Keeper) logNoOp(ctx sdk.Context, msgType string, packet channeltypes.Packet) {
	k.Logger(ctx).Debug(
		"no-op on redundant relay",
		"msg-type", msgType,
		"port-id", packet.SourcePort,
		"channel-id", packet.SourceChannel,
		"sequence", packet.Sequence,
	)
}

func packetLabels(packet channeltypes.Packet) []metrics.Label {
	return []metrics.Label{
		telemetry.NewLabel(coremetrics.LabelSourcePort, packet.SourcePort),
		telemetry.NewLabel(coremetrics.LabelSourceChannel, packet.SourceChannel),
		telemetry.NewLabel(coremetrics.LabelDestinationPort, packet.DestinationPort),
		telemetry.NewLabel(coremetrics.LabelDestinationChannel, packet.DestinationChannel),
	}
}
