package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_programs(t *testing.T) {
	smallPrimes := primes
	smallPrimes[1] = 30

	vmTestCases{
		vmTest("factorial").
			withProgram(factorial[:]...).
			withTestOutput().
			expectHalted(90).expectPC(16).expectStack(0).expectSP(0).
			expectOutput("479001600\n"),

		vmTest("smoke").
			withProgram(smoke[:]...).
			expectHalted(19).expectPC(25).
			expectStack(0x11112222, 1, 6, 1).
			expectOutput("61453\n"),

		vmTest("primes below 30").
			withProgram(smallPrimes[:]...).
			expectState(Halted).expectPC(33).expectStack(30, 30).
			expectOutput(lines("2", "3", "5", "7", "11", "13", "17", "19", "23", "29")),

		vmTest("smoke seeded").
			withProgram(smoke[:]...).
			withSeed(42).
			expectHalted(19).expectStack(0x11112222, 1, 6, 1),

		vmTest("factorial traced").
			withProgram(factorial[:]...).
			withStepLimit(20).
			withTestTrace().
			expectState(Running).expectSteps(20),
	}.run(t)
}

func Test_primes_limited(t *testing.T) {
	const limit = 20000
	res, err := compareDispatch(context.Background(), &primes, withStepLimit(limit))
	require.NoError(t, err, "expected both dispatch strategies to agree")
	assert.Equal(t, Running, res.State)
	assert.Equal(t, uint64(limit), res.Steps)
	assert.True(t, res.Succeeded(limit), "expected running out of steps to count as success")
	assert.NoError(t, res.Err)
	assert.True(t, strings.HasPrefix(string(res.Output), lines("2", "3", "5", "7", "11")),
		"expected the first primes, got %q", res.Output)
}

func Test_trace(t *testing.T) {
	for _, d := range []Dispatch{Switched, Threaded} {
		t.Run(d.String(), func(t *testing.T) {
			var traced []string
			vm := New(&factorial, WithDispatch(d), WithStepLimit(4), WithTracef(func(mess string, args ...interface{}) {
				traced = append(traced, fmt.Sprintf(mess, args...))
			}))
			require.NoError(t, vm.Run())
			assert.Equal(t, []string{
				"exec @0 push(12) -- s:[]",
				"exec @2 push(1) -- s:[12]",
				"exec @4 swap -- s:[12 1]",
				"exec @5 swap -- s:[1 12]",
			}, traced)
		})
	}
}

func Test_sampleNames(t *testing.T) {
	assert.Equal(t, []string{"factorial", "primes", "smoke"}, sampleNames())
	for _, name := range sampleNames() {
		assert.NotEmpty(t, samples[name].description, "expected %v to be described", name)
	}
}
