package keeper_test

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/cosmos/ibc-core/modules/core/03-connection/types"
	host "github.com/cosmos/ibc-core/modules/core/24-host"
	ibctesting "github.com/cosmos/ibc-core/testing"
)

func (s *KeeperTestSuite) TestMsgConnectionOpenInitEvents() {
	s.SetupTest()
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupClients()

	msg := types.NewMsgConnectionOpenInit(
		path.EndpointA.ClientID,
		path.EndpointA.Counterparty.ClientID,
		path.EndpointA.Counterparty.Chain.GetPrefix(), ibctesting.DefaultOpenInitVersion, path.EndpointA.ConnectionConfig.DelayPeriod,
		s.chainA.Signer(),
	)

	events, err := s.chainA.SendMsgs(msg)
	s.Require().NoError(err)

	expectedEvents := sdk.Events{
		sdk.NewEvent(
			types.EventTypeConnectionOpenInit,
			sdk.NewAttribute(types.AttributeKeyConnectionID, ibctesting.FirstConnectionID),
			sdk.NewAttribute(types.AttributeKeyClientID, path.EndpointA.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyClientID, path.EndpointB.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyConnectionID, ""),
		),
	}.ToABCIEvents()

	ibctesting.AssertEvents(&s.Suite, expectedEvents, events)
}

func (s *KeeperTestSuite) TestMsgConnectionOpenTryEvents() {
	s.SetupTest()
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupClients()

	s.Require().NoError(path.EndpointA.ConnOpenInit())

	s.Require().NoError(path.EndpointB.UpdateClient())

	counterpartyClient, clientProof, consensusProof, consensusHeight, initProof, proofHeight := path.EndpointB.QueryConnectionHandshakeProof()

	msg := types.NewMsgConnectionOpenTry(
		path.EndpointB.ClientID, path.EndpointB.Counterparty.ConnectionID, path.EndpointB.Counterparty.ClientID,
		counterpartyClient, path.EndpointB.Counterparty.Chain.GetPrefix(), []*types.Version{types.DefaultIBCVersion}, path.EndpointB.ConnectionConfig.DelayPeriod,
		initProof, clientProof, consensusProof,
		proofHeight, consensusHeight,
		s.chainB.Signer(),
	)

	events, err := s.chainB.SendMsgs(msg)
	s.Require().NoError(err)

	expectedEvents := sdk.Events{
		sdk.NewEvent(
			types.EventTypeConnectionOpenTry,
			sdk.NewAttribute(types.AttributeKeyConnectionID, ibctesting.FirstConnectionID),
			sdk.NewAttribute(types.AttributeKeyClientID, path.EndpointB.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyClientID, path.EndpointA.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyConnectionID, path.EndpointA.ConnectionID),
		),
		sdk.NewEvent(
			sdk.EventTypeMessage,
			sdk.NewAttribute(sdk.AttributeKeyModule, types.AttributeValueCategory),
		),
	}.ToABCIEvents()

	ibctesting.AssertEvents(&s.Suite, expectedEvents, events)
}

func (s *KeeperTestSuite) TestMsgConnectionOpenAckEvents() {
	s.SetupTest()
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupClients()

	s.Require().NoError(path.EndpointA.ConnOpenInit())
	s.Require().NoError(path.EndpointB.ConnOpenTry())

	s.Require().NoError(path.EndpointA.UpdateClient())

	counterpartyClient, clientProof, consensusProof, consensusHeight, tryProof, proofHeight := path.EndpointA.QueryConnectionHandshakeProof()

	msg := types.NewMsgConnectionOpenAck(
		path.EndpointA.ConnectionID, path.EndpointA.Counterparty.ConnectionID, counterpartyClient,
		tryProof, clientProof, consensusProof,
		proofHeight, consensusHeight,
		types.DefaultIBCVersion,
		s.chainA.Signer(),
	)

	events, err := s.chainA.SendMsgs(msg)
	s.Require().NoError(err)

	expectedEvents := sdk.Events{
		sdk.NewEvent(
			types.EventTypeConnectionOpenAck,
			sdk.NewAttribute(types.AttributeKeyConnectionID, ibctesting.FirstConnectionID),
			sdk.NewAttribute(types.AttributeKeyClientID, path.EndpointA.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyClientID, path.EndpointB.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyConnectionID, path.EndpointB.ConnectionID),
		),
	}.ToABCIEvents()

	ibctesting.AssertEvents(&s.Suite, expectedEvents, events)
}

func (s *KeeperTestSuite) TestMsgConnectionOpenConfirmEvents() {
	s.SetupTest()
	path := ibctesting.NewPath(s.chainA, s.chainB)
	path.SetupClients()

	s.Require().NoError(path.EndpointA.ConnOpenInit())
	s.Require().NoError(path.EndpointB.ConnOpenTry())
	s.Require().NoError(path.EndpointA.ConnOpenAck())

	s.Require().NoError(path.EndpointB.UpdateClient())

	connectionKey := host.ConnectionKey(path.EndpointB.Counterparty.ConnectionID)
	proof, height := path.EndpointB.Counterparty.QueryProof(connectionKey)

	msg := types.NewMsgConnectionOpenConfirm(
		path.EndpointB.ConnectionID,
		proof, height,
		s.chainB.Signer(),
	)

	events, err := s.chainB.SendMsgs(msg)
	s.Require().NoError(err)

	expectedEvents := sdk.Events{
		sdk.NewEvent(
			types.EventTypeConnectionOpenConfirm,
			sdk.NewAttribute(types.AttributeKeyConnectionID, ibctesting.FirstConnectionID),
			sdk.NewAttribute(types.AttributeKeyClientID, path.EndpointB.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyClientID, path.EndpointA.ClientID),
			sdk.NewAttribute(types.AttributeKeyCounterpartyConnectionID, path.EndpointA.ConnectionID),
		),
	}.ToABCIEvents()

	ibctesting.AssertEvents(&s.Suite, expectedEvents, events)
}
