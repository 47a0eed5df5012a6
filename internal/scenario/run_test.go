package scenario_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/teasim/internal/demo"
	"github.com/roach88/teasim/internal/ir"
	"github.com/roach88/teasim/internal/scenario"
)

func registry() *scenario.Registry {
	reg := scenario.NewRegistry()
	demo.Register(reg)
	return reg
}

func TestRunAllTestdata(t *testing.T) {
	scenarios, err := scenario.LoadDir(filepath.Join("testdata", "scenarios"))
	require.NoError(t, err)

	for _, rep := range scenario.RunAll(registry(), scenarios, nil) {
		t.Run(rep.Scenario, func(t *testing.T) {
			assert.True(t, rep.OK, "problems: %v", rep.Problems)
			assert.NotEmpty(t, rep.Result.Digest)
			assert.NotEmpty(t, rep.Result.Trace)
		})
	}
}

func TestRunReportsMissedExpectations(t *testing.T) {
	sc := &scenario.Scenario{
		Name:    "wrong model",
		Program: "echo",
		Steps:   []scenario.Step{{ClickButton: "Click Me"}},
		Expect:  scenario.Expect{Model: &scenario.Value{Value: ir.String("<INIT>")}},
	}
	rep := scenario.Run(registry(), sc, nil)

	assert.False(t, rep.OK)
	assert.False(t, rep.Result.Pass)
	assert.Equal(t, "assertion", rep.Result.Category)
	require.Len(t, rep.Problems, 1)
	assert.Contains(t, rep.Problems[0], "expected the run to pass, but it failed")
}

func TestRunExpectedFailureThatPasses(t *testing.T) {
	fail := false
	sc := &scenario.Scenario{
		Name:    "should fail",
		Program: "echo",
		Expect:  scenario.Expect{Pass: &fail, Category: "query"},
	}
	rep := scenario.Run(registry(), sc, nil)
	assert.False(t, rep.OK)
	assert.Equal(t, []string{"expected the run to fail, but it passed"}, rep.Problems)
}

func TestRunExplicitFail(t *testing.T) {
	fail := false
	sc := &scenario.Scenario{
		Name:    "explicit",
		Program: "echo",
		Steps: []scenario.Step{
			{Fail: &scenario.ExplicitFail{Category: "unfinished", Message: "wire the checkout page"}},
			{ClickButton: "Click Me"},
		},
		Expect: scenario.Expect{Pass: &fail, Category: "explicit", Failure: "unfinished: wire the checkout page"},
	}
	rep := scenario.Run(registry(), sc, nil)
	assert.True(t, rep.OK, "problems: %v", rep.Problems)
	assert.Len(t, rep.Result.Trace, 2)
}

func TestRunDigestIsStable(t *testing.T) {
	sc := &scenario.Scenario{
		Name:    "digest",
		Program: "echo",
		Steps: []scenario.Step{
			{Update: &scenario.Value{Value: ir.String("A")}},
			{ClickButton: "Click Me"},
		},
	}
	first := scenario.Run(registry(), sc, nil)
	require.True(t, first.OK)

	sc.Expect.Digest = first.Result.Digest
	assert.True(t, scenario.Run(registry(), sc, nil).OK)

	sc.Expect.Digest = "0000000000000000000000000000000000000000000000000000000000000000"
	rep := scenario.Run(registry(), sc, nil)
	assert.False(t, rep.OK)
	assert.Contains(t, rep.Problems[0], "expected trace digest")
}

func TestRunUnknownProgram(t *testing.T) {
	rep := scenario.Run(registry(), &scenario.Scenario{Name: "x", Program: "nope"}, nil)
	assert.False(t, rep.OK)
	assert.Equal(t, []string{`unknown program "nope" (registered: echo, router, todo)`}, rep.Problems)
}

func TestRunSimulate(t *testing.T) {
	sc := &scenario.Scenario{
		Name:    "simulate",
		Program: "echo",
		Steps: []scenario.Step{{
			Simulate: &scenario.Simulate{
				Event:   "input",
				Payload: &scenario.Value{Value: ir.Obj(ir.O("target", ir.Obj(ir.O("value", ir.String("Bo")))))},
				Target:  &scenario.SelectorSpec{ID: "name"},
			},
		}},
		Expect: scenario.Expect{LastEffect: &scenario.Value{Value: ir.String("LOG:NAME:Bo")}},
	}
	rep := scenario.Run(registry(), sc, nil)
	assert.True(t, rep.OK, "problems: %v", rep.Problems)
}

func TestDriveRejectsUnsupportedSetup(t *testing.T) {
	reg := registry()

	router, _ := reg.Lookup("router")
	_, err := router(scenario.Setup{Flags: `{}`})
	assert.EqualError(t, err, "program takes no flags")

	todo, _ := reg.Lookup("todo")
	_, err = todo(scenario.Setup{URL: "https://a.test/"})
	assert.EqualError(t, err, "program has no navigation; use base_url instead of url")

	echo, _ := reg.Lookup("echo")
	_, err = echo(scenario.Setup{Flags: `"hello"`, BaseURL: "http://localhost:3000/"})
	assert.EqualError(t, err, "flags cannot be combined with base_url")
}

func TestRegisterTwicePanics(t *testing.T) {
	reg := registry()
	assert.Panics(t, func() { demo.Register(reg) })
}
