// seehuhn.de/go/fontcore - a font parsing and SDF glyph-atlas library
// Copyright (C) 2026  The fontcore contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sdf

import (
	"math"
	"sort"
	"testing"
)

func hasRootNear(roots []float64, want, tol float64) bool {
	for _, r := range roots {
		if math.Abs(r-want) < tol {
			return true
		}
	}
	return false
}

// TestSolveCubicThreeDistinctRoots covers (t-1)(t-2)(t-3) = 0, a cubic
// with a negative discriminant (three distinct real roots), the
// trigonometric branch of solveCubic.
func TestSolveCubicThreeDistinctRoots(t *testing.T) {
	roots, n := solveCubic(1, -6, 11, -6)
	if n != 3 {
		t.Fatalf("got %d roots, want 3", n)
	}
	got := append([]float64{}, roots[:n]...)
	sort.Float64s(got)
	want := []float64{1, 2, 3}
	for i, w := range want {
		if math.Abs(got[i]-w) > 1e-6 {
			t.Errorf("root %d = %v, want %v", i, got[i], w)
		}
	}
}

// TestSolveCubicOneRealRoot covers t^3 - 8 = 0 (a=1,b=0,c=0,d=-8), with
// a single real root at t=2 and a positive discriminant.
func TestSolveCubicOneRealRoot(t *testing.T) {
	roots, n := solveCubic(1, 0, 0, -8)
	if n != 1 {
		t.Fatalf("got %d roots, want 1", n)
	}
	if math.Abs(roots[0]-2) > 1e-6 {
		t.Errorf("root = %v, want 2", roots[0])
	}
}

// TestSolveCubicDegradesToQuadratic covers a zero (within tolerance)
// leading coefficient falling through to solveQuadratic.
func TestSolveCubicDegradesToQuadratic(t *testing.T) {
	// b*t^2+c*t+d with roots 2 and -3: t^2+t-6
	roots, n := solveCubic(0, 1, 1, -6)
	if n != 2 {
		t.Fatalf("got %d roots, want 2", n)
	}
	if !hasRootNear(roots[:n], 2, 1e-9) || !hasRootNear(roots[:n], -3, 1e-9) {
		t.Errorf("roots = %v, want {2, -3}", roots[:n])
	}
}

// TestSolveQuadraticNoRealRoots covers a negative discriminant.
func TestSolveQuadraticNoRealRoots(t *testing.T) {
	_, n := solveQuadratic(1, 0, 1) // t^2+1=0
	if n != 0 {
		t.Errorf("got %d roots, want 0", n)
	}
}

// TestSolveQuadraticLinearFallback covers a==0, b!=0 falling through
// to the single linear root.
func TestSolveQuadraticLinearFallback(t *testing.T) {
	roots, n := solveQuadratic(0, 2, -4) // 2t-4=0 -> t=2
	if n != 1 || math.Abs(roots[0]-2) > 1e-9 {
		t.Fatalf("got (%v, %d), want ({2,...}, 1)", roots, n)
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 1) != 1 {
		t.Error("clamp(5, 0, 1) should saturate to 1")
	}
	if clamp(-5, 0, 1) != 0 {
		t.Error("clamp(-5, 0, 1) should saturate to 0")
	}
	if clamp(0.5, 0, 1) != 0.5 {
		t.Error("clamp(0.5, 0, 1) should pass through unchanged")
	}
}
