package constants

// FIX 4.4 field tags used by the Deribit FIX gateway.
const (
	TagAvgPx              = 6
	TagBeginString        = 8
	TagBodyLength         = 9
	TagCheckSum           = 10
	TagClOrdID            = 11
	TagCommission         = 12
	TagCumQty             = 14
	TagExecID             = 17
	TagExecInst           = 18
	TagLastPx             = 31
	TagLastQty            = 32
	TagMsgSeqNum          = 34
	TagMsgType            = 35
	TagOrderID            = 37
	TagOrderQty           = 38
	TagOrdStatus          = 39
	TagOrdType            = 40
	TagPrice              = 44
	TagSenderCompID       = 49
	TagSendingTime        = 52
	TagSide               = 54
	TagSymbol             = 55
	TagTargetCompID       = 56
	TagText               = 58
	TagTimeInForce        = 59
	TagTransactTime       = 60
	TagRawDataLength      = 95
	TagRawData            = 96
	TagStopPx             = 99
	TagHeartBtInt         = 108
	TagExecType           = 150
	TagLeavesQty          = 151
	TagUsername           = 553
	TagPassword           = 554
	TagCancelOnDisconnect = 9001
)

// FIX message types.
const (
	MsgTypeHeartbeat        = "0"
	MsgTypeTestRequest      = "1"
	MsgTypeReject           = "3"
	MsgTypeLogout           = "5"
	MsgTypeExecutionReport  = "8"
	MsgTypeLogon            = "A"
	MsgTypeNewOrderSingle   = "D"
	MsgTypeOrderCancelReq   = "F"
	MsgTypeMarketDataSnap   = "W"
	MsgTypeMarketDataReject = "Y"
)
