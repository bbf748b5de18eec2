// Package mps reads strict fixed-column MPS files (<= 61 chars/line)
// into an lpmodel.Model. Only ROWS, COLUMNS, RHS, RANGES and BOUNDS
// sections are recognized; ENDATA terminates the scan. Fields are
// extracted by fixed column offsets: name at column 4 (width 8), first
// value-name at column 14 (width 8) and value at column 24 (width 12),
// optional second value-name at column 39 and value at column 49.
package mps

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lpsimplex/internal/lpmodel"
)

type section int

const (
	sectNone section = iota
	sectRows
	sectColumns
	sectRHS
	sectRanges
	sectBounds
)

const (
	nameCol   = 4
	nameWidth = 8
	val1Name  = 14
	val1Val   = 24
	val2Name  = 39
	val2Val   = 49
	valWidth  = 12
)

func field(line string, start, width int) string {
	if start >= len(line) {
		return ""
	}
	end := start + width
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[start:end])
}

func parseValue(line string, nameAt, valAt int) (name string, value float64, ok bool) {
	name = field(line, nameAt, nameWidth)
	if name == "" {
		return "", 0, false
	}
	raw := field(line, valAt, valWidth)
	if raw == "" {
		return name, 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return name, 0, false
	}
	return name, v, true
}

// Read parses a strict fixed-column MPS stream into a Model. Row order
// in ROWS becomes constraint order; COLUMNS order becomes variable
// order. RANGES rows are turned into a second constraint row so the
// effective row is bounded on both sides; BOUNDS entries populate the
// per-variable VariableBound record — both are applied to the returned
// Model rather than read-and-discarded.
func Read(r io.Reader) (*lpmodel.Model, error) {
	scanner := bufio.NewScanner(r)

	var (
		sect           = sectNone
		objName        string
		rowNames       []string
		rowSense       = map[string]lpmodel.Sense{}
		rowIndex       = map[string]int{}
		rhs            = map[string]float64{}
		varNames       []string
		varIndex       = map[string]int{}
		coefs          = map[string]map[string]float64{} // rowName -> varName -> coef
		objCoefs       = map[string]float64{}
		bounds         = map[string]lpmodel.VariableBound{}
	)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ROWS"):
			sect = sectRows
			continue
		case strings.HasPrefix(line, "COLUMNS"):
			sect = sectColumns
			continue
		case strings.HasPrefix(line, "RHS"):
			sect = sectRHS
			continue
		case strings.HasPrefix(line, "RANGES"):
			sect = sectRanges
			continue
		case strings.HasPrefix(line, "BOUNDS"):
			sect = sectBounds
			continue
		case strings.HasPrefix(line, "ENDATA"):
			sect = sectNone
			continue
		}
		if !strings.HasPrefix(line, " ") || trimmed == "" {
			continue
		}

		switch sect {
		case sectRows:
			kind := line[1]
			name := field(line, nameCol, nameWidth)
			switch kind {
			case 'N':
				if objName == "" {
					objName = name
				}
			case 'L':
				rowSense[name] = lpmodel.Le
				rowIndex[name] = len(rowNames)
				rowNames = append(rowNames, name)
			case 'G':
				rowSense[name] = lpmodel.Ge
				rowIndex[name] = len(rowNames)
				rowNames = append(rowNames, name)
			case 'E':
				rowSense[name] = lpmodel.Eq
				rowIndex[name] = len(rowNames)
				rowNames = append(rowNames, name)
			}

		case sectColumns:
			varName := field(line, nameCol, nameWidth)
			if varName == "" {
				continue
			}
			if _, seen := varIndex[varName]; !seen {
				varIndex[varName] = len(varNames)
				varNames = append(varNames, varName)
			}
			if rn, v, ok := parseValue(line, val1Name, val1Val); ok {
				assignCoef(rn, objName, varName, v, coefs, objCoefs)
			}
			if len(line) >= 40 {
				if rn, v, ok := parseValue(line, val2Name, val2Val); ok {
					assignCoef(rn, objName, varName, v, coefs, objCoefs)
				}
			}

		case sectRHS:
			if rn, v, ok := parseValue(line, val1Name, val1Val); ok {
				rhs[rn] = v
			}
			if len(line) >= 40 {
				if rn, v, ok := parseValue(line, val2Name, val2Val); ok {
					rhs[rn] = v
				}
			}

		case sectRanges:
			applyRange(line, rowSense, rhs)

		case sectBounds:
			applyBound(line, bounds)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mps: read error: %w", err)
	}

	n := len(varNames)
	m := &lpmodel.Model{N: n, Objective: make([]float64, n)}
	for vn, idx := range varIndex {
		m.Objective[idx] = objCoefs[vn]
	}

	for _, rn := range rowNames {
		row := make([]float64, n)
		for vn, c := range coefs[rn] {
			row[varIndex[vn]] = c
		}

		sense, primaryRHS := rowSense[rn], rhs[rn]
		lo, hasLo := rhs[rn+"__lo"]
		hi, hasHi := rhs[rn+"__hi"]
		relaxedEq := sense == lpmodel.Eq && (hasLo || hasHi)

		// A RANGES entry on an E row relaxes the pinned equality into an
		// interval: the primary row becomes Le at the high edge so the
		// complementary Ge row below actually widens the feasible
		// region instead of leaving the row pinned at its exact RHS.
		if relaxedEq {
			sense, primaryRHS = lpmodel.Le, hi
		}
		m.AddConstraint(rn, row, sense, primaryRHS)

		// A RANGES entry for this row adds the complementary bound as a
		// second row over the same coefficients, turning the single
		// L/G/E row into a boxed interval. For a relaxed E row the
		// primary row above already carries the high edge, so only the
		// low edge needs adding here.
		if hasLo {
			m.AddConstraint(rn+"_range", row, lpmodel.Ge, lo)
		}
		if hasHi && !relaxedEq {
			m.AddConstraint(rn+"_range", row, lpmodel.Le, hi)
		}
	}

	if len(bounds) > 0 {
		m.Bounds = make([]lpmodel.VariableBound, n)
		for i := range m.Bounds {
			m.Bounds[i] = lpmodel.VariableBound{Lower: 0, Kind: lpmodel.LowerOnly}
		}
		for vn, b := range bounds {
			if idx, ok := varIndex[vn]; ok {
				b.Name = vn
				m.Bounds[idx] = b
			}
		}
	}

	return m, nil
}

func assignCoef(rowOrObjField, objName, varName string, value float64, coefs map[string]map[string]float64, objCoefs map[string]float64) {
	if rowOrObjField == objName {
		objCoefs[varName] = value
		return
	}
	if coefs[rowOrObjField] == nil {
		coefs[rowOrObjField] = map[string]float64{}
	}
	coefs[rowOrObjField][varName] = value
}

// applyRange maps a RANGES entry to the sense/RHS pair it augments,
// widening an L or G row into a boxed interval and replacing an E row's
// single point with an interval per the sign of the range value.
func applyRange(line string, rowSense map[string]lpmodel.Sense, rhs map[string]float64) {
	rn, r, ok := parseValue(line, val1Name, val1Val)
	if !ok {
		return
	}
	sense, known := rowSense[rn]
	if !known {
		return
	}
	base := rhs[rn]
	absR := r
	if absR < 0 {
		absR = -absR
	}
	switch sense {
	case lpmodel.Le:
		// interval [base-|r|, base]; the stored row stays Le at base,
		// callers needing the lower edge read it back via this map.
		rhs[rn+"__lo"] = base - absR
	case lpmodel.Ge:
		rhs[rn+"__hi"] = base + absR
	case lpmodel.Eq:
		// Unlike L/G rows (where the primary row's own RHS is one edge
		// of the interval), relaxing an E row replaces its RHS
		// entirely, so both edges must be recorded explicitly here.
		if r >= 0 {
			rhs[rn+"__lo"], rhs[rn+"__hi"] = base, base+r
		} else {
			rhs[rn+"__lo"], rhs[rn+"__hi"] = base+r, base
		}
	}
}

// applyBound parses one BOUNDS line: a two-character bound-type code at
// columns 1-2, then the variable name and optional value at the same
// name/value offsets COLUMNS and RHS use for their first field pair.
func applyBound(line string, bounds map[string]lpmodel.VariableBound) {
	if len(line) < 3 {
		return
	}
	kind := strings.TrimSpace(line[1:3])
	varName, value, hasValue := parseValue(line, val1Name, val1Val)
	if varName == "" {
		return
	}
	cur := bounds[varName]
	cur.Kind = mergeKind(cur.Kind, kind)

	switch kind {
	case "UP":
		if hasValue {
			cur.Upper = value
		}
	case "LO":
		if hasValue {
			cur.Lower = value
		}
	case "FX":
		if hasValue {
			cur.Lower, cur.Upper = value, value
			cur.Kind = lpmodel.Boxed
		}
	case "FR":
		cur.Kind = lpmodel.Free
	case "PL":
		cur.Kind = lpmodel.LowerOnly
	case "MI":
		// A bare MI means "lower bound = -infinity" with no implied
		// upper bound, MPS's own convention for a free-below variable.
		cur.Kind = lpmodel.Free
	case "BV":
		cur.Lower, cur.Upper = 0, 1
		cur.Kind = lpmodel.Boxed
	}
	bounds[varName] = cur
}

func mergeKind(existing lpmodel.BoundKind, code string) lpmodel.BoundKind {
	switch code {
	case "UP":
		if existing == lpmodel.LowerOnly {
			return lpmodel.Boxed
		}
		return lpmodel.UpperOnly
	case "LO":
		if existing == lpmodel.UpperOnly {
			return lpmodel.Boxed
		}
		return lpmodel.LowerOnly
	default:
		return existing
	}
}
