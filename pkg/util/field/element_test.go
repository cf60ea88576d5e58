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
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_Uint64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 1 << 32, math.MaxUint64} {
		val, ok := Uint64(v).AsUint64()
		require.True(t, ok)
		assert.Equal(t, v, val)
	}
}

func TestElement_AsUint64Overflow(t *testing.T) {
	_, ok := TwoPowN(64).AsUint64()
	assert.False(t, ok)
	// -1 is the largest field element
	_, ok = Zero().Sub(One()).AsUint64()
	assert.False(t, ok)
	//
	assert.Panics(t, func() { TwoPowN(70).ToUint64() })
}

func TestElement_Inverse(t *testing.T) {
	assert.True(t, Zero().Inverse().IsZero())
	//
	for v := uint64(1); v < 300; v++ {
		x := Uint64(v)
		assert.True(t, x.Mul(x.Inverse()).IsOne(), "inverse of %d", v)
	}
}

func TestElement_Wraparound(t *testing.T) {
	// There is no native overflow: 0 - 1 is p - 1, not 255.
	minusOne := Zero().Sub(One())
	assert.True(t, minusOne.Add(One()).IsZero())
	assert.True(t, minusOne.Equal(One().Neg()))
	assert.Equal(t, 1, minusOne.Cmp(Uint64(255)))
}

func TestElement_TwoPowN(t *testing.T) {
	assert.True(t, TwoPowN(0).IsOne())
	assert.True(t, TwoPowN(8).Equal(Uint64(256)))
	assert.True(t, TwoPowN(63).Equal(Uint64(1<<63)))
}

func TestElement_FromBytes(t *testing.T) {
	elems := FromBytes([]byte("ab"))
	require.Len(t, elems, 2)
	assert.True(t, elems[0].Equal(Uint64('a')))
	assert.True(t, elems[1].Equal(Uint64('b')))
	assert.Equal(t, Uint64s('a', 'b'), elems)
}

func TestElement_BigInt(t *testing.T) {
	val, err := BigInt(big.NewInt(12345))
	require.NoError(t, err)
	assert.Equal(t, Uint64(12345), val)
	//
	_, err = BigInt(big.NewInt(-1))
	assert.Error(t, err)
	_, err = BigInt(Modulus())
	assert.Error(t, err)
	// Largest field element
	largest := new(big.Int).Sub(Modulus(), big.NewInt(1))
	val, err = BigInt(largest)
	require.NoError(t, err)
	assert.Equal(t, One().Neg(), val)
}
