package domains_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/anteater/internal/domains"
)

func TestNullJoin(t *testing.T) {
	assert.Equal(t, domains.Nullable, domains.NullJoin(domains.NonNull, domains.Null))
	assert.Equal(t, domains.NonNull, domains.NullJoin(domains.NullBottom, domains.NonNull))
	assert.Equal(t, domains.NullTop, domains.NullJoin(domains.NullTop, domains.Null))
}

func TestNullLeq(t *testing.T) {
	assert.True(t, domains.NullLeq(domains.NullBottom, domains.NonNull))
	assert.True(t, domains.NullLeq(domains.NonNull, domains.Nullable))
	assert.True(t, domains.NullLeq(domains.Nullable, domains.NullTop))
	assert.False(t, domains.NullLeq(domains.NullTop, domains.NonNull))
}

func TestNullTransfer(t *testing.T) {
	assert.Equal(t, domains.Null, domains.NullTransfer(domains.NullOpAssignNull, nil))
	assert.Equal(t, domains.NonNull, domains.NullTransfer(domains.NullOpAssignNew, nil))
	assert.Equal(t, domains.Nullable, domains.NullTransfer(domains.NullOpFieldLoad, nil))
	assert.Equal(t, domains.NonNull, domains.NullTransfer(domains.NullOpGuardNonNull, nil))
}

func TestIntervalJoinMeet(t *testing.T) {
	a := domains.IntervalOf(0, 5)
	b := domains.IntervalOf(3, 10)
	j := domains.IntervalJoin(a, b)
	assert.Equal(t, domains.IntervalOf(0, 10), j)

	m := domains.IntervalMeet(a, b)
	assert.Equal(t, domains.IntervalOf(3, 5), m)

	disjoint := domains.IntervalMeet(domains.IntervalOf(0, 1), domains.IntervalOf(5, 6))
	assert.True(t, disjoint.Bottom)
}

func TestIntervalWidenNarrow(t *testing.T) {
	prev := domains.IntervalOf(0, 0)
	cur := domains.IntervalOf(0, 1)
	widened := domains.IntervalWiden(prev, cur)
	assert.Equal(t, 0.0, widened.Lo)
	assert.True(t, math.IsInf(widened.Hi, 1))

	narrowed := domains.IntervalNarrow(widened, domains.IntervalOf(0, 7))
	assert.Equal(t, domains.IntervalOf(0, 7), narrowed)
}

func TestIntervalTransferDivisionByZeroStraddle(t *testing.T) {
	numerator := domains.IntervalOf(1, 10)
	straddling := domains.IntervalOf(-2, 2)
	result := domains.IntervalTransfer(domains.IntervalOpDiv, []domains.Interval{numerator, straddling})
	assert.Equal(t, domains.IntervalTop(), result)
}

func TestIntervalTransferMul(t *testing.T) {
	a := domains.IntervalOf(-2, 3)
	b := domains.IntervalOf(-1, 1)
	result := domains.IntervalTransfer(domains.IntervalOpMul, []domains.Interval{a, b})
	assert.Equal(t, domains.IntervalOf(-3, 3), result)
}
