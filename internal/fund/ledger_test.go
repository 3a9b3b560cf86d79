package fund

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
	now    time.Time
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.ledger = NewLedger([]string{"RGTI", "QBTS"}, decimal.NewFromInt(2000), decimal.RequireFromString("0.0005"))
	s.now = time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
}

func (s *LedgerTestSuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func (s *LedgerTestSuite) TestLongOpenDebitsCost() {
	fill, err := s.ledger.Open("RGTI", model.SideLong, 10, 100, s.now)
	s.Require().NoError(err)

	s.assertDecimal("999.5", s.ledger.AvailableCapital())
	s.assertDecimal("1000", s.ledger.TotalCapitalUsed())
	s.assertDecimal("-1000.5", fill.CapitalDelta)
	s.assertDecimal("0.5", fill.Cost)

	pos := s.ledger.Position("RGTI")
	s.Equal(model.SideLong, pos.Side)
	s.Equal(int64(10), pos.Quantity)
	s.assertDecimal("100", pos.EntryPrice)
	s.Equal(s.now, pos.OpenedAt)
}

func (s *LedgerTestSuite) TestLongRoundTrip() {
	_, err := s.ledger.Open("RGTI", model.SideLong, 10, 100, s.now)
	s.Require().NoError(err)

	fill, err := s.ledger.Close("RGTI", 110)
	s.Require().NoError(err)

	// 999.5 + 1100 * 0.9995
	s.assertDecimal("2098.95", s.ledger.AvailableCapital())
	s.True(s.ledger.TotalCapitalUsed().IsZero())
	s.assertDecimal("100", fill.GrossProfit)
	s.assertDecimal("0.55", fill.Cost)
	s.True(s.ledger.Position("RGTI").IsFlat())
}

func (s *LedgerTestSuite) TestShortRoundTrip() {
	fill, err := s.ledger.Open("QBTS", model.SideShort, 20, 50, s.now)
	s.Require().NoError(err)
	s.True(fill.CapitalDelta.IsZero())
	s.assertDecimal("2000", s.ledger.AvailableCapital())
	s.assertDecimal("1000", s.ledger.TotalCapitalUsed())

	fill, err = s.ledger.Close("QBTS", 45)
	s.Require().NoError(err)

	// profit = 20*50 - 20*45*1.0005 = 99.55
	s.assertDecimal("99.55", fill.CapitalDelta)
	s.assertDecimal("2099.55", s.ledger.AvailableCapital())
	s.True(s.ledger.TotalCapitalUsed().IsZero())
}

func (s *LedgerTestSuite) TestShortLossReducesCapital() {
	_, err := s.ledger.Open("QBTS", model.SideShort, 10, 50, s.now)
	s.Require().NoError(err)

	fill, err := s.ledger.Close("QBTS", 55)
	s.Require().NoError(err)

	// 500 - 550*1.0005 = -50.275
	s.assertDecimal("-50.275", fill.CapitalDelta)
	s.assertDecimal("1949.725", s.ledger.AvailableCapital())
}

func (s *LedgerTestSuite) TestAtMostOnePositionPerSymbol() {
	_, err := s.ledger.Open("RGTI", model.SideLong, 1, 10, s.now)
	s.Require().NoError(err)

	_, err = s.ledger.Open("RGTI", model.SideShort, 1, 10, s.now)
	s.True(errors.HasCode(err, errors.ErrCodePositionNotFlat))

	_, err = s.ledger.Open("RGTI", model.SideLong, 1, 10, s.now)
	s.True(errors.HasCode(err, errors.ErrCodePositionNotFlat))

	s.Equal(int64(1), s.ledger.Position("RGTI").Quantity)
}

func (s *LedgerTestSuite) TestCloseRequiresOpenPosition() {
	_, err := s.ledger.Close("RGTI", 10)
	s.True(errors.HasCode(err, errors.ErrCodePositionNotOpen))
	s.assertDecimal("2000", s.ledger.AvailableCapital())
}

func (s *LedgerTestSuite) TestRejectsBadInput() {
	_, err := s.ledger.Open("IONQ", model.SideLong, 1, 10, s.now)
	s.True(errors.HasCode(err, errors.ErrCodeUnknownSymbol))

	_, err = s.ledger.Open("RGTI", model.SideLong, 0, 10, s.now)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidQuantity))

	_, err = s.ledger.Open("RGTI", model.SideFlat, 1, 10, s.now)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidQuantity))

	_, err = s.ledger.Open("RGTI", model.SideLong, 1, -3, s.now)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidPrice))

	s.Empty(s.ledger.OpenSymbols())
}

func (s *LedgerTestSuite) TestCapitalConservation() {
	type trade struct {
		symbol     string
		side       model.Side
		qty        int64
		open, exit float64
	}
	trades := []trade{
		{"RGTI", model.SideLong, 10, 12.5, 13.25},
		{"QBTS", model.SideShort, 30, 8.4, 8.1},
		{"RGTI", model.SideShort, 5, 14, 14.6},
		{"QBTS", model.SideLong, 40, 7.75, 7.5},
	}

	start := s.ledger.AvailableCapital()
	gross, costs := decimal.Zero, decimal.Zero
	for _, tr := range trades {
		open, err := s.ledger.Open(tr.symbol, tr.side, tr.qty, tr.open, s.now)
		s.Require().NoError(err)
		closed, err := s.ledger.Close(tr.symbol, tr.exit)
		s.Require().NoError(err)
		gross = gross.Add(closed.GrossProfit)
		costs = costs.Add(open.Cost).Add(closed.Cost)
	}

	s.True(s.ledger.TotalCapitalUsed().IsZero())
	s.True(start.Add(gross).Sub(costs).Equal(s.ledger.AvailableCapital()),
		"start %s gross %s costs %s end %s", start, gross, costs, s.ledger.AvailableCapital())
}

func (s *LedgerTestSuite) TestReconcileUsedAndSnapshot() {
	_, err := s.ledger.Open("RGTI", model.SideLong, 10, 10, s.now)
	s.Require().NoError(err)
	_, err = s.ledger.Open("QBTS", model.SideShort, 10, 20, s.now)
	s.Require().NoError(err)

	_, err = s.ledger.Close("RGTI", 11)
	s.Require().NoError(err)
	s.ledger.ReconcileUsed()
	s.assertDecimal("200", s.ledger.TotalCapitalUsed())

	snap := s.ledger.Snapshot()
	s.Len(snap.Positions, 2)
	s.Equal(1, snap.OpenCount())
	s.Equal([]string{"QBTS"}, s.ledger.OpenSymbols())
}
