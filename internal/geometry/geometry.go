// Package geometry maps aisle sides, bays and levels onto concrete
// position and level numbers.
//
// Every function here assumes that all bays in a warehouse have the same
// width, BayStride. The position formula skips BayStride positions per
// preceding bay; bays of differing widths would need a running offset
// over the preceding bays instead.
package geometry

import "github.com/xelth-com/eckslotgo/internal/address"

// BayStride is the uniform bay width, in positions per aisle side
const BayStride = 4

// LevelStep is the distance between consecutive levels
const LevelStep = 10

// PositionRange describes the positions exposed by one aisle side
type PositionRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Count int `json:"count"`
}

// SideRanges holds the ranges of both sides of an aisle
type SideRanges struct {
	Odd  PositionRange `json:"odd"`
	Even PositionRange `json:"even"`
}

// PositionsForBay returns the position numbers covered by a bay, in
// increasing order. Odd sides yield odd numbers, even sides even numbers.
//
//	PositionsForBay(1, 4, Odd)  = [1 3 5 7]
//	PositionsForBay(1, 4, Even) = [2 4 6 8]
//	PositionsForBay(2, 4, Odd)  = [9 11 13 15]
func PositionsForBay(bayNumber, width int, side address.Side) []int {
	if bayNumber < 1 || width < 1 {
		return nil
	}
	bayIndex := bayNumber - 1

	positions := make([]int, width)
	for i := 0; i < width; i++ {
		positions[i] = sidePosition(bayIndex*BayStride+i, side)
	}
	return positions
}

// sidePosition converts a zero-based slot index on a side into its position number
func sidePosition(base int, side address.Side) int {
	if side.IsOdd() {
		return base*2 + 1
	}
	return (base + 1) * 2
}

// PositionRangeForAisleSide gives the first, last and number of positions on
// one side of an aisle holding locationsPerAisle positions in total
func PositionRangeForAisleSide(locationsPerAisle int, side address.Side) PositionRange {
	if side.IsOdd() {
		return PositionRange{
			Start: 1,
			End:   locationsPerAisle - 1,
			Count: (locationsPerAisle + 1) / 2,
		}
	}
	return PositionRange{
		Start: 2,
		End:   locationsPerAisle,
		Count: locationsPerAisle / 2,
	}
}

// LocationRanges returns the ranges of both sides at once
func LocationRanges(locationsPerAisle int) SideRanges {
	return SideRanges{
		Odd:  PositionRangeForAisleSide(locationsPerAisle, address.Odd),
		Even: PositionRangeForAisleSide(locationsPerAisle, address.Even),
	}
}

// ValidLevels lists the level values of a location with the given number of
// tiers: [0, 10, 20, ..., (levelsPerLocation-1)*10]
func ValidLevels(levelsPerLocation int) []int {
	if levelsPerLocation < 1 {
		return nil
	}
	levels := make([]int, levelsPerLocation)
	for i := range levels {
		levels[i] = i * LevelStep
	}
	return levels
}

// BaysPerSide is the number of bays needed to hold positionsPerSide positions
func BaysPerSide(positionsPerSide int) int {
	if positionsPerSide <= 0 {
		return 0
	}
	return (positionsPerSide + BayStride - 1) / BayStride
}

// PositionsInBay is how many positions the zero-based bayIndex actually
// holds; only the last bay of a side can be partially filled
func PositionsInBay(positionsPerSide, bayIndex int) int {
	n := positionsPerSide - bayIndex*BayStride
	if n > BayStride {
		return BayStride
	}
	if n < 0 {
		return 0
	}
	return n
}
