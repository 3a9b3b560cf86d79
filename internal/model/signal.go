package model

import "github.com/google/uuid"

// Signal is the entry decision for a flat symbol.
type Signal string

const (
	SignalNone  Signal = "none"
	SignalLong  Signal = "long"
	SignalShort Signal = "short"
)

// Instruction is the broker order instruction.
type Instruction string

const (
	InstructionBuy        Instruction = "BUY"
	InstructionSell       Instruction = "SELL"
	InstructionSellShort  Instruction = "SELL_SHORT"
	InstructionBuyToCover Instruction = "BUY_TO_COVER"
)

// Order is a market order for whole shares.
type Order struct {
	ID          uuid.UUID
	Symbol      string
	Instruction Instruction
	Quantity    int64
}

// NewOrder builds an order with a fresh client id.
func NewOrder(symbol string, instruction Instruction, quantity int64) Order {
	return Order{
		ID:          uuid.New(),
		Symbol:      symbol,
		Instruction: instruction,
		Quantity:    quantity,
	}
}

// OpenInstruction maps an entry side to the order that opens it.
func OpenInstruction(side Side) Instruction {
	if side == SideShort {
		return InstructionSellShort
	}
	return InstructionBuy
}

// CloseInstruction maps an open side to the order that closes it.
func CloseInstruction(side Side) Instruction {
	if side == SideShort {
		return InstructionBuyToCover
	}
	return InstructionSell
}
