package mocks

//go:generate mockgen -destination=./mock_credential.go -package=mocks -mock_names=Source=MockCredentialSource BreakoutTrader/internal/credential Source
//go:generate mockgen -destination=./mock_quote_source.go -package=mocks -mock_names=QuoteSource=MockQuoteSource BreakoutTrader/internal/collector QuoteSource
//go:generate mockgen -destination=./mock_order_gateway.go -package=mocks -mock_names=OrderGateway=MockOrderGateway BreakoutTrader/internal/gateway OrderGateway
//go:generate mockgen -destination=./mock_market_hours.go -package=mocks -mock_names=MarketHours=MockMarketHours BreakoutTrader/internal/gateway MarketHours
//go:generate mockgen -destination=./mock_position_reporter.go -package=mocks -mock_names=PositionReporter=MockPositionReporter BreakoutTrader/internal/gateway PositionReporter
//go:generate mockgen -destination=./mock_notifier.go -package=mocks -mock_names=Notifier=MockNotifier BreakoutTrader/internal/notifier Notifier
//go:generate mockgen -destination=./mock_recorder.go -package=mocks -mock_names=Recorder=MockRecorder BreakoutTrader/internal/recorder Recorder
