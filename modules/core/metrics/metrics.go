package metrics

// Prometheus metric labels.
const (
	// 02-client labels

	LabelClientType = "client_type"
	LabelClientID   = "client_id"
	LabelUpdateType = "update_type"
	LabelMsgType    = "msg_type"

	// 03-connection labels

	LabelConnectionID = "connection_id"

	// Message server labels

	LabelPort               = "port"
	LabelSourcePort         = "source_port"
	LabelSourceChannel      = "source_channel"
	LabelDestinationPort    = "destination_port"
	LabelDestinationChannel = "destination_channel"
	LabelTimeoutType        = "timeout_type"
	LabelChannelOrdering    = "channel_ordering"
	LabelResult             = "result"
)
