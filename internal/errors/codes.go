package errors

// Exchange-reported error kinds (Deribit API v2.1.1).
const (
	Success                                          Kind = 0
	AuthorizationRequired                            Kind = 10000
	GeneralError                                     Kind = 10001
	QtyTooLow                                        Kind = 10002
	OrderOverlap                                     Kind = 10003
	OrderNotFound                                    Kind = 10004
	PriceTooLow                                      Kind = 10005
	PriceTooLow4Index                                Kind = 10006
	PriceTooHigh                                     Kind = 10007
	NotEnoughFunds                                   Kind = 10009
	AlreadyClosed                                    Kind = 10010
	PriceNotAllowed                                  Kind = 10011
	BookClosed                                       Kind = 10012
	PMEMaxTotalOpenOrders                            Kind = 10013
	PMEMaxFutureOpenOrders                           Kind = 10014
	PMEMaxOptionOpenOrders                           Kind = 10015
	PMEMaxFutureOpenOrdersSize                       Kind = 10016
	PMEMaxOptionOpenOrdersSize                       Kind = 10017
	NonPMEMaxFuturePositionSize                      Kind = 10018
	LockedByAdmin                                    Kind = 10019
	InvalidOrUnsupportedInstrument                   Kind = 10020
	InvalidAmount                                    Kind = 10021
	InvalidQuantity                                  Kind = 10022
	InvalidPrice                                     Kind = 10023
	InvalidMaxShow                                   Kind = 10024
	InvalidOrderID                                   Kind = 10025
	PricePrecisionExceeded                           Kind = 10026
	NonIntegerContractAmount                         Kind = 10027
	TooManyRequests                                  Kind = 10028
	NotOwnerOfOrder                                  Kind = 10029
	MustBeWebsocketRequest                           Kind = 10030
	InvalidArgsForInstrument                         Kind = 10031
	WholeCostTooLow                                  Kind = 10032
	NotImplemented                                   Kind = 10033
	TriggerPriceTooHigh                              Kind = 10034
	TriggerPriceTooLow                               Kind = 10035
	InvalidMaxShowAmount                             Kind = 10036
	NonPMETotalShortOptionsPositionsSize             Kind = 10037
	PMEMaxRiskReducingOrders                         Kind = 10038
	NotEnoughFundsInCurrency                         Kind = 10039
	Retry                                            Kind = 10040
	SettlementInProgress                             Kind = 10041
	PriceWrongTick                                   Kind = 10043
	TriggerPriceWrongTick                            Kind = 10044
	CanNotCancelLiquidationOrder                     Kind = 10045
	CanNotEditLiquidationOrder                       Kind = 10046
	MatchingEngineQueueFull                          Kind = 10047
	NotOnThisServer                                  Kind = 10048
	CancelOnDisconnectFailed                         Kind = 10049
	TooManyConcurrentRequests                        Kind = 10066
	DisabledWhilePositionLock                        Kind = 10072
	AlreadyFilled                                    Kind = 11008
	MaxSpotOpenOrders                                Kind = 11013
	PostOnlyPriceModificationNotPossible             Kind = 11021
	MaxSpotOrderQuantity                             Kind = 11022
	InvalidArguments                                 Kind = 11029
	OtherReject                                      Kind = 11030
	OtherError                                       Kind = 11031
	NoMoreTriggers                                   Kind = 11035
	InvalidTriggerPrice                              Kind = 11036
	OutdatedInstrumentForIVOrder                     Kind = 11037
	NoAdvForFutures                                  Kind = 11038
	NoAdvPostonly                                    Kind = 11039
	NotAdvOrder                                      Kind = 11041
	PermissionDenied                                 Kind = 11042
	BadArgument                                      Kind = 11043
	NotOpenOrder                                     Kind = 11044
	InvalidEvent                                     Kind = 11045
	OutdatedInstrument                               Kind = 11046
	UnsupportedArgCombination                        Kind = 11047
	WrongMaxShowForOption                            Kind = 11048
	BadArguments                                     Kind = 11049
	BadRequest                                       Kind = 11050
	SystemMaintenance                                Kind = 11051
	SubscribeErrorUnsubscribed                       Kind = 11052
	TransferNotFound                                 Kind = 11053
	PostOnlyReject                                   Kind = 11054
	PostOnlyNotAllowed                               Kind = 11055
	UnauthenticatedPublicRequestsTemporarilyDisabled Kind = 11056
	InvalidAddr                                      Kind = 11090
	InvalidTransferAddress                           Kind = 11091
	AddressAlreadyExist                              Kind = 11092
	MaxAddrCountExceeded                             Kind = 11093
	InternalServerError                              Kind = 11094
	DisabledDepositAddressCreation                   Kind = 11095
	AddressBelongsToUser                             Kind = 11096
	NoDepositAddress                                 Kind = 11097
	AccountLocked                                    Kind = 11098
	TooManySubaccounts                               Kind = 12001
	WrongSubaccountName                              Kind = 12002
	LoginOverLimit                                   Kind = 12003
	RegistrationOverLimit                            Kind = 12004
	CountryIsBanned                                  Kind = 12005
	TransferNotAllowed                               Kind = 12100
	SecurityKeyAuthorizationOverLimit                Kind = 12998
	InvalidCredentials                               Kind = 13004
	PwdMatchError                                    Kind = 13005
	SecurityCodeError                                Kind = 13006
	UserNotFound                                     Kind = 13007
	RequestFailed                                    Kind = 13008
	Unauthorized                                     Kind = 13009
	ValueRequired                                    Kind = 13010
	ValueTooShort                                    Kind = 13011
	UnavailableInSubaccount                          Kind = 13012
	InvalidPhoneNumber                               Kind = 13013
	CannotSendSMS                                    Kind = 13014
	InvalidSMSCode                                   Kind = 13015
	InvalidInput                                     Kind = 13016
	InvalidContentType                               Kind = 13018
	OrderbookClosed                                  Kind = 13019
	NotFound                                         Kind = 13020
	Forbidden                                        Kind = 13021
	MethodSwitchedOffByAdmin                         Kind = 13025
	TemporarilyUnavailable                           Kind = 13028
	MMPTrigger                                       Kind = 13030
	VerificationRequired                             Kind = 13031
	NonUniqueOrderLabel                              Kind = 13032
	NoMoreSecurityKeysAllowed                        Kind = 13034
	ActiveComboLimitReached                          Kind = 13035
	UnavailableForComboBooks                         Kind = 13036
	IncompleteKYCData                                Kind = 13037
	MMPRequired                                      Kind = 13040
	CODNotEnabled                                    Kind = 13042
	QuotesFrozen                                     Kind = 13043
	ScopeExceeded                                    Kind = 13403
	Unavailable                                      Kind = 13503
	RequestCancelledByUser                           Kind = 13666
	Replaced                                         Kind = 13777
	RawSubscriptionsNotAvailableForUnauthorized      Kind = 13778
	MovePositionsOverLimit                           Kind = 13780
	CouponAlreadyUsed                                Kind = 13781
	KYCTransferAlreadyInitiated                      Kind = 13791
)

// Locally detected kinds. The 90000 range is not used by the exchange.
const (
	FixMalformedFrame   Kind = 90001
	FixChecksumMismatch Kind = 90002
	FixInvalidTimestamp Kind = 90003
	FixMissingField     Kind = 90004
	FixUnsupportedValue Kind = 90005
	JSONDecodeFailed    Kind = 90006
	UnsupportedCurrency Kind = 90007
	BookSequenceGap     Kind = 90008
)

var kindTable = map[Kind]kindInfo{
	Success:                                          {"success", CategorySystem, "Success, No error"},
	AuthorizationRequired:                            {"authorization_required", CategoryAuthorization, "Authorization issue, invalid or absent signature etc."},
	GeneralError:                                     {"error", CategorySystem, "Some general failure, no public information available"},
	QtyTooLow:                                        {"qty_too_low", CategoryTrading, "Order quantity is too low"},
	OrderOverlap:                                     {"order_overlap", CategoryTrading, "Rejection, order overlap is found and self-trading is not enabled"},
	OrderNotFound:                                    {"order_not_found", CategoryTrading, "Attempt to operate with order that can't be found by specified id or label"},
	PriceTooLow:                                      {"price_too_low", CategoryTrading, "Price is too low, limit defines current limit for the operation"},
	PriceTooLow4Index:                                {"price_too_low4idx", CategoryTrading, "Price is too low for current index, limit defines current bottom limit"},
	PriceTooHigh:                                     {"price_too_high", CategoryTrading, "Price is too high, limit defines current up limit for the operation"},
	NotEnoughFunds:                                   {"not_enough_funds", CategoryTrading, "Account has not enough funds for the operation"},
	AlreadyClosed:                                    {"already_closed", CategoryTrading, "Attempt of doing something with closed order"},
	PriceNotAllowed:                                  {"price_not_allowed", CategoryTrading, "This price is not allowed for some reason"},
	BookClosed:                                       {"book_closed", CategoryTrading, "Operation for an instrument which order book had been closed"},
	PMEMaxTotalOpenOrders:                            {"pme_max_total_open_orders", CategoryTrading, "Total limit of open orders has been exceeded (PME users)"},
	PMEMaxFutureOpenOrders:                           {"pme_max_future_open_orders", CategoryTrading, "Limit of count of futures' open orders has been exceeded (PME users)"},
	PMEMaxOptionOpenOrders:                           {"pme_max_option_open_orders", CategoryTrading, "Limit of count of options' open orders has been exceeded (PME users)"},
	PMEMaxFutureOpenOrdersSize:                       {"pme_max_future_open_orders_size", CategoryTrading, "Limit of size for futures has been exceeded (PME users)"},
	PMEMaxOptionOpenOrdersSize:                       {"pme_max_option_open_orders_size", CategoryTrading, "Limit of size for options has been exceeded (PME users)"},
	NonPMEMaxFuturePositionSize:                      {"non_pme_max_future_position_size", CategoryTrading, "Limit of size for futures has been exceeded (non-PME users)"},
	LockedByAdmin:                                    {"locked_by_admin", CategoryTrading, "Trading is temporary locked by the admin"},
	InvalidOrUnsupportedInstrument:                   {"invalid_or_unsupported_instrument", CategoryValidation, "Instrument name is not valid"},
	InvalidAmount:                                    {"invalid_amount", CategoryValidation, "Amount is not valid"},
	InvalidQuantity:                                  {"invalid_quantity", CategoryValidation, "Quantity was not recognized as a valid number (for API v1)"},
	InvalidPrice:                                     {"invalid_price", CategoryValidation, "Price was not recognized as a valid number"},
	InvalidMaxShow:                                   {"invalid_max_show", CategoryValidation, "max_show parameter was not recognized as a valid number"},
	InvalidOrderID:                                   {"invalid_order_id", CategoryValidation, "Order id is missing or its format was not recognized as valid"},
	PricePrecisionExceeded:                           {"price_precision_exceeded", CategoryValidation, "Extra precision of the price is not supported"},
	NonIntegerContractAmount:                         {"non_integer_contract_amount", CategoryValidation, "Futures contract amount was not recognized as integer"},
	TooManyRequests:                                  {"too_many_requests", CategoryRateLimit, "Allowed request rate has been exceeded"},
	NotOwnerOfOrder:                                  {"not_owner_of_order", CategoryTrading, "Attempt to operate with not own order"},
	MustBeWebsocketRequest:                           {"must_be_websocket_request", CategoryProtocol, "REST request where Websocket is expected"},
	InvalidArgsForInstrument:                         {"invalid_args_for_instrument", CategoryValidation, "Some of the arguments are not recognized as valid"},
	WholeCostTooLow:                                  {"whole_cost_too_low", CategoryTrading, "Total cost is too low"},
	NotImplemented:                                   {"not_implemented", CategorySystem, "Method is not implemented yet"},
	TriggerPriceTooHigh:                              {"trigger_price_too_high", CategoryTrading, "Trigger price is too high"},
	TriggerPriceTooLow:                               {"trigger_price_too_low", CategoryTrading, "Trigger price is too low"},
	InvalidMaxShowAmount:                             {"invalid_max_show_amount", CategoryValidation, "Max Show Amount is not valid"},
	NonPMETotalShortOptionsPositionsSize:             {"non_pme_total_short_options_positions_size", CategoryTrading, "Limit of total size for short options positions has been exceeded (non-PME users)"},
	PMEMaxRiskReducingOrders:                         {"pme_max_risk_reducing_orders", CategoryTrading, "Limit of open risk reducing orders has been reached (PME users)"},
	NotEnoughFundsInCurrency:                         {"not_enough_funds_in_currency", CategoryTrading, "User does not have sufficient spot reserves or negative impact on portfolio margin"},
	Retry:                                            {"retry", CategorySystem, "Request can't be processed right now and should be retried"},
	SettlementInProgress:                             {"settlement_in_progress", CategoryTrading, "Settlement is in progress"},
	PriceWrongTick:                                   {"price_wrong_tick", CategoryValidation, "Price has to be rounded to an instrument tick size"},
	TriggerPriceWrongTick:                            {"trigger_price_wrong_tick", CategoryValidation, "Trigger Price has to be rounded to an instrument tick size"},
	CanNotCancelLiquidationOrder:                     {"can_not_cancel_liquidation_order", CategoryTrading, "Liquidation order can't be cancelled"},
	CanNotEditLiquidationOrder:                       {"can_not_edit_liquidation_order", CategoryTrading, "Liquidation order can't be edited"},
	MatchingEngineQueueFull:                          {"matching_engine_queue_full", CategoryRateLimit, "Reached limit of pending Matching Engine requests for user"},
	NotOnThisServer:                                  {"not_on_this_server", CategorySystem, "The requested operation is not available on this server"},
	CancelOnDisconnectFailed:                         {"cancel_on_disconnect_failed", CategoryTrading, "Enabling Cancel On Disconnect for the connection failed"},
	TooManyConcurrentRequests:                        {"too_many_concurrent_requests", CategoryRateLimit, "The client has sent too many public requests that have not yet been executed"},
	DisabledWhilePositionLock:                        {"disabled_while_position_lock", CategoryTrading, "Spot trading is disabled for users in reduce only mode"},
	AlreadyFilled:                                    {"already_filled", CategoryTrading, "This request is not allowed in regards to the filled order"},
	MaxSpotOpenOrders:                                {"max_spot_open_orders", CategoryTrading, "Total limit of open orders on spot instruments has been exceeded"},
	PostOnlyPriceModificationNotPossible:             {"post_only_price_modification_not_possible", CategoryTrading, "Price modification for post only order is not possible"},
	MaxSpotOrderQuantity:                             {"max_spot_order_quantity", CategoryTrading, "Limit of quantity per currency for spot instruments has been exceeded"},
	InvalidArguments:                                 {"invalid_arguments", CategoryValidation, "Some invalid input has been detected"},
	OtherReject:                                      {"other_reject", CategoryTrading, "Some rejects which are not considered as very often"},
	OtherError:                                       {"other_error", CategorySystem, "Some errors which are not considered as very often"},
	NoMoreTriggers:                                   {"no_more_triggers", CategoryTrading, "Allowed amount of trigger orders has been exceeded"},
	InvalidTriggerPrice:                              {"invalid_trigger_price", CategoryValidation, "Invalid trigger price in relation to the last trade, index or market price"},
	OutdatedInstrumentForIVOrder:                     {"outdated_instrument_for_IV_order", CategoryTrading, "Instrument already not available for trading"},
	NoAdvForFutures:                                  {"no_adv_for_futures", CategoryTrading, "Advanced orders are not available for futures"},
	NoAdvPostonly:                                    {"no_adv_postonly", CategoryTrading, "Advanced post-only orders are not supported yet"},
	NotAdvOrder:                                      {"not_adv_order", CategoryTrading, "Advanced order properties can't be set if the order is not advanced"},
	PermissionDenied:                                 {"permission_denied", CategoryAuthorization, "Permission for the operation has been denied"},
	BadArgument:                                      {"bad_argument", CategoryValidation, "Bad argument has been passed"},
	NotOpenOrder:                                     {"not_open_order", CategoryTrading, "Attempt to do open order operations with the not open order"},
	InvalidEvent:                                     {"invalid_event", CategoryValidation, "Event name has not been recognized"},
	OutdatedInstrument:                               {"outdated_instrument", CategoryTrading, "At several minutes to instrument expiration, advanced IV orders are not allowed"},
	UnsupportedArgCombination:                        {"unsupported_arg_combination", CategoryValidation, "The specified combination of arguments is not supported"},
	WrongMaxShowForOption:                            {"wrong_max_show_for_option", CategoryValidation, "Wrong Max Show for options"},
	BadArguments:                                     {"bad_arguments", CategoryValidation, "Several bad arguments have been passed"},
	BadRequest:                                       {"bad_request", CategoryProtocol, "Request has not been parsed properly"},
	SystemMaintenance:                                {"system_maintenance", CategorySystem, "System is under maintenance"},
	SubscribeErrorUnsubscribed:                       {"subscribe_error_unsubscribed", CategoryProtocol, "Subscription error"},
	TransferNotFound:                                 {"transfer_not_found", CategoryTrading, "Specified transfer is not found"},
	PostOnlyReject:                                   {"post_only_reject", CategoryTrading, "Request rejected due to reject_post_only flag"},
	PostOnlyNotAllowed:                               {"post_only_not_allowed", CategoryTrading, "Post only flag not allowed for given order type"},
	UnauthenticatedPublicRequestsTemporarilyDisabled: {"unauthenticated_public_requests_temporarily_disabled", CategoryRateLimit, "Unauthenticated public requests were temporarily disabled"},
	InvalidAddr:                                      {"invalid_addr", CategoryValidation, "Invalid address"},
	InvalidTransferAddress:                           {"invalid_transfer_address", CategoryValidation, "Invalid address for the transfer"},
	AddressAlreadyExist:                              {"address_already_exist", CategoryTrading, "The address already exists"},
	MaxAddrCountExceeded:                             {"max_addr_count_exceeded", CategoryTrading, "Limit of allowed addresses has been reached"},
	InternalServerError:                              {"internal_server_error", CategorySystem, "Some unhandled error on server"},
	DisabledDepositAddressCreation:                   {"disabled_deposit_address_creation", CategoryTrading, "Deposit address creation has been disabled by admin"},
	AddressBelongsToUser:                             {"address_belongs_to_user", CategoryTrading, "Withdrawal instead of transfer"},
	NoDepositAddress:                                 {"no_deposit_address", CategoryTrading, "Deposit address not specified"},
	AccountLocked:                                    {"account_locked", CategoryAuthorization, "Account locked"},
	TooManySubaccounts:                               {"too_many_subaccounts", CategoryTrading, "Limit of subaccounts is reached"},
	WrongSubaccountName:                              {"wrong_subaccount_name", CategoryValidation, "The input is not allowed as the name of subaccount"},
	LoginOverLimit:                                   {"login_over_limit", CategoryAuthorization, "The number of failed login attempts is limited"},
	RegistrationOverLimit:                            {"registration_over_limit", CategoryRateLimit, "The number of registration requests is limited"},
	CountryIsBanned:                                  {"country_is_banned", CategoryAuthorization, "The country is banned (possibly via IP check)"},
	TransferNotAllowed:                               {"transfer_not_allowed", CategoryTrading, "Transfer is not allowed"},
	SecurityKeyAuthorizationOverLimit:                {"security_key_authorization_over_limit", CategoryAuthorization, "Too many failed security key authorizations"},
	InvalidCredentials:                               {"invalid_credentials", CategoryAuthorization, "Invalid credentials have been used"},
	PwdMatchError:                                    {"pwd_match_error", CategoryAuthorization, "Password confirmation error"},
	SecurityCodeError:                                {"security_error", CategoryAuthorization, "Invalid Security Code"},
	UserNotFound:                                     {"user_not_found", CategoryAuthorization, "User's security code has been changed or wrong"},
	RequestFailed:                                    {"request_failed", CategorySystem, "Request failed because of invalid input or internal failure"},
	Unauthorized:                                     {"unauthorized", CategoryAuthorization, "Wrong or expired authorization token or bad signature"},
	ValueRequired:                                    {"value_required", CategoryValidation, "Invalid input, missing value"},
	ValueTooShort:                                    {"value_too_short", CategoryValidation, "Input is too short"},
	UnavailableInSubaccount:                          {"unavailable_in_subaccount", CategoryTrading, "Subaccount restrictions"},
	InvalidPhoneNumber:                               {"invalid_phone_number", CategoryValidation, "Unsupported or invalid phone number"},
	CannotSendSMS:                                    {"cannot_send_sms", CategorySystem, "SMS sending failed -- phone number is wrong"},
	InvalidSMSCode:                                   {"invalid_sms_code", CategoryValidation, "Invalid SMS code"},
	InvalidInput:                                     {"invalid_input", CategoryValidation, "Invalid input"},
	InvalidContentType:                               {"invalid_content_type", CategoryProtocol, "Invalid content type of the request"},
	OrderbookClosed:                                  {"orderbook_closed", CategoryTrading, "Closed, expired order book"},
	NotFound:                                         {"not_found", CategoryValidation, "Instrument is not found, invalid instrument name"},
	Forbidden:                                        {"forbidden", CategoryAuthorization, "Not enough permissions to execute the request, forbidden"},
	MethodSwitchedOffByAdmin:                         {"method_switched_off_by_admin", CategorySystem, "API method temporarily switched off by the administrator"},
	TemporarilyUnavailable:                           {"temporarily_unavailable", CategorySystem, "The requested service is not responding or processing takes too long"},
	MMPTrigger:                                       {"mmp_trigger", CategoryTrading, "Order has been rejected due to the MMP trigger"},
	VerificationRequired:                             {"verification_required", CategoryAuthorization, "API method allowed only for verified users"},
	NonUniqueOrderLabel:                              {"non_unique_order_label", CategoryValidation, "Request allowed only for orders uniquely identified by given label"},
	NoMoreSecurityKeysAllowed:                        {"no_more_security_keys_allowed", CategoryAuthorization, "Maximal number of tokens allowed reached"},
	ActiveComboLimitReached:                          {"active_combo_limit_reached", CategoryTrading, "Limit of active combo books was reached"},
	UnavailableForComboBooks:                         {"unavailable_for_combo_books", CategoryTrading, "Action is temporarily unavailable for combo books"},
	IncompleteKYCData:                                {"incomplete_KYC_data", CategoryTrading, "KYC verification data is insufficient for external service provider"},
	MMPRequired:                                      {"mmp_required", CategoryTrading, "User is not a MMP user"},
	CODNotEnabled:                                    {"cod_not_enabled", CategoryTrading, "Cancel-on-Disconnect is not enabled for the connection"},
	QuotesFrozen:                                     {"quotes_frozen", CategoryTrading, "Quotes are still frozen after previous cancel"},
	ScopeExceeded:                                    {"scope_exceeded", CategoryAuthorization, "Error returned after the user tried to edit/delete an API key with insufficient scope"},
	Unavailable:                                      {"unavailable", CategorySystem, "Method is currently not available"},
	RequestCancelledByUser:                           {"request_cancelled_by_user", CategoryTrading, "Request was cancelled by the user with other api request"},
	Replaced:                                         {"replaced", CategoryTrading, "Edit request was replaced by other one"},
	RawSubscriptionsNotAvailableForUnauthorized:      {"raw_subscriptions_not_available_for_unauthorized", CategoryAuthorization, "Raw subscriptions are not available for unauthorized requests"},
	MovePositionsOverLimit:                           {"move_positions_over_limit", CategoryRateLimit, "The client cannot execute the request yet, should wait"},
	CouponAlreadyUsed:                                {"coupon_already_used", CategoryTrading, "The coupon has already been used by current account"},
	KYCTransferAlreadyInitiated:                      {"KYC_transfer_already_initiated", CategoryTrading, "Sharing of KYC data with a third party provider was already initiated"},

	FixMalformedFrame:   {"fix_malformed_frame", CategoryProtocol, "FIX frame is not a sequence of tag=value fields"},
	FixChecksumMismatch: {"fix_checksum_mismatch", CategoryProtocol, "FIX CheckSum(10) does not match the frame contents"},
	FixInvalidTimestamp: {"fix_invalid_timestamp", CategoryProtocol, "FIX UTCTimestamp is malformed or not in UTC"},
	FixMissingField:     {"fix_missing_field", CategoryProtocol, "Required FIX field is absent"},
	FixUnsupportedValue: {"fix_unsupported_value", CategoryProtocol, "FIX field value has no model equivalent"},
	JSONDecodeFailed:    {"json_decode_failed", CategoryProtocol, "JSON payload could not be decoded"},
	UnsupportedCurrency: {"unsupported_currency", CategoryValidation, "Currency is not supported by the exchange"},
	BookSequenceGap:     {"book_sequence_gap", CategoryProtocol, "Order book change does not follow the current book"},
}
