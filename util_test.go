package comp

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type UtilTestSuite struct {
	suite.Suite
}

func (suite *UtilTestSuite) TestIdentity() {
	suite.Run("PreservesValue", func() {
		suite.Equal(3, Identity(3))
		suite.Equal("abc", Identity("abc"))
		suite.Nil(Identity(nil))
	})

	suite.Run("SharesStorage", func() {
		xs := []int{1, 2, 3}
		ys := Identity(xs).([]int)
		ys[0] = 9
		suite.Equal(9, xs[0])
	})

	suite.Run("SharesPointer", func() {
		n := 1
		p := Identity(&n).(*int)
		*p = 7
		suite.Equal(7, n)
	})
}

func (suite *UtilTestSuite) TestIdentityValue() {
	suite.Run("PreservesValue", func() {
		suite.Equal(3, IdentityValue(3))
		suite.Equal([]int{1, 2, 3}, IdentityValue([]int{1, 2, 3}))
	})

	suite.Run("NeverAliases", func() {
		xs := []int{1, 2, 3}
		ys := IdentityValue(xs).([]int)
		ys[0] = 9
		suite.Equal(1, xs[0])
	})

	suite.Run("NeverAliasesNested", func() {
		m := map[string][]int{"a": {1}}
		n := IdentityValue(m).(map[string][]int)
		n["a"][0] = 9
		suite.Equal(1, m["a"][0])
	})
}

func (suite *UtilTestSuite) TestNoop() {
	suite.Run("AcceptsAnything", func() {
		Noop()
		Noop(1, "two", 3.0, nil)
	})

	suite.Run("DoesNotMutate", func() {
		xs := []int{1, 2, 3}
		Noop(xs)
		suite.Equal([]int{1, 2, 3}, xs)
	})
}

func (suite *UtilTestSuite) TestConstantly() {
	suite.Run("IgnoresArguments", func() {
		c := Constantly(42)
		suite.Equal(42, c.Call())
		suite.Equal(42, c.Call("anything"))
		suite.Equal(42, c.Call(1, 2, 3))
	})

	suite.Run("CapturesByValue", func() {
		v := 5
		c := Constantly(v)
		v = 10
		suite.Equal(5, c.Value())
	})

	suite.Run("MutableThroughRef", func() {
		c := Constantly(5)
		p := c.Ref().(*int)
		*p = 6
		suite.Equal(6, c.Value())
	})

	suite.Run("MutableThroughSet", func() {
		c := Constantly("before")
		c.Set("after")
		suite.Equal("after", c.Call())
	})

	suite.Run("TakeConsumes", func() {
		c := Constantly([]int{1, 2})
		suite.Equal([]int{1, 2}, c.Take())
		suite.Nil(c.Value())
	})

	suite.Run("NilPanics", func() {
		suite.Panics(func() { Constantly(nil) })
	})
}

func TestUtilTestSuite(t *testing.T) {
	suite.Run(t, new(UtilTestSuite))
}
