package types

import (
	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"

	"github.com/cosmos/ibc-core/internal/encoding"
	clienttypes "github.com/cosmos/ibc-core/modules/core/02-client/types"
	connectiontypes "github.com/cosmos/ibc-core/modules/core/03-connection/types"
	channeltypes "github.com/cosmos/ibc-core/modules/core/04-channel/types"
	ibcerrors "github.com/cosmos/ibc-core/modules/core/errors"
)

// Msg is an IBC message decoded from its Any envelope.
type Msg interface {
	encoding.Marshaler
	ValidateBasic() error
}

// MsgResponse is the result of executing a Msg.
type MsgResponse interface {
	Marshal() ([]byte, error)
}

type unpackableMsg interface {
	Msg
	encoding.Unmarshaler
}

// msgRegistry maps every routable message type url to a constructor of an
// empty message of that type.
var msgRegistry = map[string]func() unpackableMsg{
	clienttypes.TypeURLMsgCreateClient: func() unpackableMsg { return &clienttypes.MsgCreateClient{} },
	clienttypes.TypeURLMsgUpdateClient: func() unpackableMsg { return &clienttypes.MsgUpdateClient{} },

	connectiontypes.TypeURLMsgConnectionOpenInit:    func() unpackableMsg { return &connectiontypes.MsgConnectionOpenInit{} },
	connectiontypes.TypeURLMsgConnectionOpenTry:     func() unpackableMsg { return &connectiontypes.MsgConnectionOpenTry{} },
	connectiontypes.TypeURLMsgConnectionOpenAck:     func() unpackableMsg { return &connectiontypes.MsgConnectionOpenAck{} },
	connectiontypes.TypeURLMsgConnectionOpenConfirm: func() unpackableMsg { return &connectiontypes.MsgConnectionOpenConfirm{} },

	channeltypes.TypeURLMsgChannelOpenInit:     func() unpackableMsg { return &channeltypes.MsgChannelOpenInit{} },
	channeltypes.TypeURLMsgChannelOpenTry:      func() unpackableMsg { return &channeltypes.MsgChannelOpenTry{} },
	channeltypes.TypeURLMsgChannelOpenAck:      func() unpackableMsg { return &channeltypes.MsgChannelOpenAck{} },
	channeltypes.TypeURLMsgChannelOpenConfirm:  func() unpackableMsg { return &channeltypes.MsgChannelOpenConfirm{} },
	channeltypes.TypeURLMsgChannelCloseInit:    func() unpackableMsg { return &channeltypes.MsgChannelCloseInit{} },
	channeltypes.TypeURLMsgChannelCloseConfirm: func() unpackableMsg { return &channeltypes.MsgChannelCloseConfirm{} },
	channeltypes.TypeURLMsgRecvPacket:          func() unpackableMsg { return &channeltypes.MsgRecvPacket{} },
	channeltypes.TypeURLMsgAcknowledgement:     func() unpackableMsg { return &channeltypes.MsgAcknowledgement{} },
	channeltypes.TypeURLMsgTimeout:             func() unpackableMsg { return &channeltypes.MsgTimeout{} },
	channeltypes.TypeURLMsgTimeoutOnClose:      func() unpackableMsg { return &channeltypes.MsgTimeoutOnClose{} },
}

// UnpackMsg decodes the message carried by anyMsg. An unknown type url is an
// ibcerrors.ErrUnknownRequest; a malformed value is an ibcerrors.ErrUnpackAny.
func UnpackMsg(anyMsg *codectypes.Any) (Msg, error) {
	if anyMsg == nil {
		return nil, errorsmod.Wrap(ibcerrors.ErrUnpackAny, "message cannot be nil")
	}

	newMsg, ok := msgRegistry[anyMsg.TypeUrl]
	if !ok {
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized IBC message type: %s", anyMsg.TypeUrl)
	}

	msg := newMsg()
	if err := msg.Unmarshal(anyMsg.Value); err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrUnpackAny, "failed to decode %s: %v", anyMsg.TypeUrl, err)
	}

	return msg, nil
}

// MsgTypeURL returns the type url under which msg is routed.
func MsgTypeURL(msg Msg) (string, error) {
	switch msg.(type) {
	case *clienttypes.MsgCreateClient:
		return clienttypes.TypeURLMsgCreateClient, nil
	case *clienttypes.MsgUpdateClient:
		return clienttypes.TypeURLMsgUpdateClient, nil
	case *connectiontypes.MsgConnectionOpenInit:
		return connectiontypes.TypeURLMsgConnectionOpenInit, nil
	case *connectiontypes.MsgConnectionOpenTry:
		return connectiontypes.TypeURLMsgConnectionOpenTry, nil
	case *connectiontypes.MsgConnectionOpenAck:
		return connectiontypes.TypeURLMsgConnectionOpenAck, nil
	case *connectiontypes.MsgConnectionOpenConfirm:
		return connectiontypes.TypeURLMsgConnectionOpenConfirm, nil
	case *channeltypes.MsgChannelOpenInit:
		return channeltypes.TypeURLMsgChannelOpenInit, nil
	case *channeltypes.MsgChannelOpenTry:
		return channeltypes.TypeURLMsgChannelOpenTry, nil
	case *channeltypes.MsgChannelOpenAck:
		return channeltypes.TypeURLMsgChannelOpenAck, nil
	case *channeltypes.MsgChannelOpenConfirm:
		return channeltypes.TypeURLMsgChannelOpenConfirm, nil
	case *channeltypes.MsgChannelCloseInit:
		return channeltypes.TypeURLMsgChannelCloseInit, nil
	case *channeltypes.MsgChannelCloseConfirm:
		return channeltypes.TypeURLMsgChannelCloseConfirm, nil
	case *channeltypes.MsgRecvPacket:
		return channeltypes.TypeURLMsgRecvPacket, nil
	case *channeltypes.MsgAcknowledgement:
		return channeltypes.TypeURLMsgAcknowledgement, nil
	case *channeltypes.MsgTimeout:
		return channeltypes.TypeURLMsgTimeout, nil
	case *channeltypes.MsgTimeoutOnClose:
		return channeltypes.TypeURLMsgTimeoutOnClose, nil
	default:
		return "", errorsmod.Wrapf(ibcerrors.ErrUnknownRequest, "unrecognized IBC message type: %T", msg)
	}
}

// PackMsg wraps msg into its Any envelope.
func PackMsg(msg Msg) (*codectypes.Any, error) {
	typeURL, err := MsgTypeURL(msg)
	if err != nil {
		return nil, err
	}

	bz, err := msg.Marshal()
	if err != nil {
		return nil, errorsmod.Wrapf(ibcerrors.ErrPackAny, "failed to marshal %s: %v", typeURL, err)
	}

	return &codectypes.Any{TypeUrl: typeURL, Value: bz}, nil
}
