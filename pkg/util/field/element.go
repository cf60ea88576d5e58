// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Element is a value of the BN254 scalar field.  It wraps fr.Element so that
// arithmetic can be written in a value style (i.e. x.Add(y)) rather than via
// pointer receivers.  Every register, cell and instruction of the machine is
// embedded into this field.
type Element struct {
	fr.Element
}

// Zero constructs a field element representing 0
func Zero() Element {
	return Element{}
}

// One constructs a field element representing 1
func One() Element {
	return Uint64(1)
}

// Uint64 construct a field element from a given uint64
func Uint64(val uint64) Element {
	var elem fr.Element
	//
	elem.SetUint64(val)
	//
	return Element{elem}
}

// TwoPowN constructs a field element representing 2^n
func TwoPowN(n uint) Element {
	var (
		val  big.Int
		elem fr.Element
	)
	//
	val.Lsh(big.NewInt(1), n)
	elem.SetBigInt(&val)
	//
	return Element{elem}
}

// BigInt constructs a field element from a given integer, which must be
// non-negative and less than the modulus.
func BigInt(val *big.Int) (Element, error) {
	var elem fr.Element
	//
	if val.Sign() < 0 || val.Cmp(fr.Modulus()) >= 0 {
		return Element{}, fmt.Errorf("value %s is not a field element", val.String())
	}
	//
	elem.SetBigInt(val)
	//
	return Element{elem}, nil
}

// Modulus returns the modulus of the underlying prime field.
func Modulus() *big.Int {
	return fr.Modulus()
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res fr.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var res fr.Element
	//
	res.Sub(&x.Element, &y.Element)
	//
	return Element{res}
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var res fr.Element
	//
	res.Mul(&x.Element, &y.Element)
	//
	return Element{res}
}

// Neg returns -x
func (x Element) Neg() Element {
	var res fr.Element
	//
	res.Neg(&x.Element)
	//
	return Element{res}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	var res fr.Element
	// NOTE: fr.Element.Inverse maps zero onto zero.
	res.Inverse(&x.Element)
	//
	return Element{res}
}

// IsZero checks whether this value is zero (or not).
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne checks whether this value is one (or not).
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

// Equal checks whether x == y
func (x Element) Equal(y Element) bool {
	return x.Element.Equal(&y.Element)
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.  Values are compared
// by their canonical (i.e. non-Montgomery) integer representation.
func (x Element) Cmp(y Element) int {
	return x.Element.Cmp(&y.Element)
}

// AsUint64 returns the numerical value of x, provided it fits within 64 bits.
// Otherwise, false is returned.  The conversion is never lossy.
func (x Element) AsUint64() (uint64, bool) {
	if !x.Element.IsUint64() {
		return 0, false
	}
	//
	return x.Element.Uint64(), true
}

// ToUint64 returns the numerical value of x, and panics if it does not fit
// within 64 bits.
func (x Element) ToUint64() uint64 {
	val, ok := x.AsUint64()
	if !ok {
		panic(fmt.Errorf("cannot convert to uint64: %s", x.String()))
	}
	//
	return val
}

// Bytes returns the big-endian encoded value of the Element, including leading
// zeros.
func (x Element) Bytes() [fr.Bytes]byte {
	return x.Element.Bytes()
}

func (x Element) String() string {
	return x.Element.String()
}

// Text returns the numerical value of x in the given base.
func (x Element) Text(base int) string {
	return x.Element.Text(base)
}

// Uint64s converts an array of integers into an array of field elements.
func Uint64s(vals ...uint64) []Element {
	elems := make([]Element, len(vals))
	//
	for i, v := range vals {
		elems[i] = Uint64(v)
	}
	//
	return elems
}

// FromBytes converts an array of bytes into an array of field elements, one per
// byte.  This is the natural encoding of text given to (or produced by) the
// machine.
func FromBytes(bytes []byte) []Element {
	elems := make([]Element, len(bytes))
	//
	for i, b := range bytes {
		elems[i] = Uint64(uint64(b))
	}
	//
	return elems
}
