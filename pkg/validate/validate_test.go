package validate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dashweave/dashweave/pkg/content"
	"github.com/dashweave/dashweave/pkg/errors"
)

func TestValidateRequiredORGroup(t *testing.T) {
	t.Run("x_vars alone passes", func(t *testing.T) {
		c := content.New().Add(content.KindStackedBar,
			content.WithParam("x_vars", []string{"q1", "q2"}))

		result, err := Validate(c.Items(), Options{})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if !result.OK() {
			t.Errorf("x_vars alone should satisfy stacked-bar: %v", result.Issues)
		}
	})

	t.Run("x_var with stack_var passes", func(t *testing.T) {
		c := content.New().Add(content.KindStackedBar,
			content.WithParam("x_var", "q1"),
			content.WithParam("stack_var", "region"))

		result, err := Validate(c.Items(), Options{})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if !result.OK() {
			t.Errorf("x_var+stack_var should satisfy stacked-bar: %v", result.Issues)
		}
	})

	t.Run("neither alternative fails naming both", func(t *testing.T) {
		c := content.New().Add(content.KindStackedBar,
			content.WithParam("x_var", "q1")) // stack_var missing, no x_vars

		result, err := Validate(c.Items(), Options{})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if result.OK() {
			t.Fatal("incomplete stacked-bar should fail")
		}
		msg := result.Issues[0].Message
		for _, want := range []string{"x_var and stack_var", "x_vars"} {
			if !strings.Contains(msg, want) {
				t.Errorf("message %q should name alternative %q", msg, want)
			}
		}
	})
}

func TestValidateColumnCheck(t *testing.T) {
	columns := NewColumnSet("age_group", "region", "income")

	t.Run("known columns pass", func(t *testing.T) {
		c := content.New().Add(content.KindBar, content.WithParam("x_var", "age_group"))
		result, err := Validate(c.Items(), Options{Columns: columns})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if !result.OK() {
			t.Errorf("known column flagged: %v", result.Issues)
		}
	})

	t.Run("typo gets suggestion", func(t *testing.T) {
		c := content.New().Add(content.KindBar, content.WithParam("x_var", "age_grup"))
		result, err := Validate(c.Items(), Options{Columns: columns})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if result.OK() {
			t.Fatal("unknown column should produce an issue")
		}
		if got, want := result.Issues[0].Suggestion, "age_group"; got != want {
			t.Errorf("suggestion = %q, want %q", got, want)
		}
	})

	t.Run("unrelated name gets no suggestion", func(t *testing.T) {
		c := content.New().Add(content.KindBar, content.WithParam("x_var", "zzz"))
		result, err := Validate(c.Items(), Options{Columns: columns})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if result.OK() {
			t.Fatal("unknown column should produce an issue")
		}
		if got := result.Issues[0].Suggestion; got != "" {
			t.Errorf("suggestion = %q, want none", got)
		}
	})

	t.Run("list-valued column params are checked", func(t *testing.T) {
		c := content.New().Add(content.KindStackedBar,
			content.WithParam("x_vars", []string{"age_group", "regon"}))
		result, err := Validate(c.Items(), Options{Columns: columns})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if got, want := len(result.Issues), 1; got != want {
			t.Fatalf("issue count = %d, want %d: %v", got, want, result.Issues)
		}
		if got, want := result.Issues[0].Suggestion, "region"; got != want {
			t.Errorf("suggestion = %q, want %q", got, want)
		}
	})

	t.Run("no columns supplied skips the check", func(t *testing.T) {
		c := content.New().Add(content.KindBar, content.WithParam("x_var", "anything"))
		result, err := Validate(c.Items(), Options{})
		if err != nil {
			t.Fatalf("Validate error: %v", err)
		}
		if !result.OK() {
			t.Errorf("column check should be skipped without a column set: %v", result.Issues)
		}
	})
}

func TestValidatePerDatasetColumns(t *testing.T) {
	sets := map[string]ColumnSet{
		"":       NewColumnSet("age_group"),
		"census": NewColumnSet("population"),
	}
	columnsFor := func(ref string) (ColumnSet, bool) {
		s, ok := sets[ref]
		return s, ok
	}

	c := content.New().
		Add(content.KindBar, content.WithParam("x_var", "age_group")).
		Add(content.KindBar, content.WithParam("x_var", "population"), content.FromDataset("census")).
		Add(content.KindBar, content.WithParam("x_var", "whatever"), content.FromDataset("unresolved"))

	result, err := Validate(c.Items(), Options{ColumnsFor: columnsFor})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.OK() {
		t.Errorf("per-dataset resolution failed: %v", result.Issues)
	}
}

func TestValidateFailFast(t *testing.T) {
	c := content.New().
		Add(content.KindBar).  // missing x_var
		Add(content.KindLine) // missing x_var/y_var

	result, err := Validate(c.Items(), Options{StopOnFirstError: true})
	if err == nil {
		t.Fatal("fail-fast mode should return an error")
	}
	if !errors.Is(err, errors.ErrCodeMissingField) {
		t.Errorf("error code = %v, want MISSING_FIELD", errors.GetCode(err))
	}
	if got, want := len(result.Issues), 1; got != want {
		t.Errorf("fail-fast collected %d issues, want %d", got, want)
	}
	if got, want := result.Issues[0].ItemIndex, 1; got != want {
		t.Errorf("first issue item = %d, want %d (index order)", got, want)
	}
}

func TestValidateCollectAll(t *testing.T) {
	c := content.New().
		Add(content.KindBar).
		Add(content.KindText, content.WithParam("text", "fine")).
		Add(content.KindLine)

	result, err := Validate(c.Items(), Options{})
	if err != nil {
		t.Fatalf("collect-all mode returned error: %v", err)
	}
	if got, want := len(result.Issues), 2; got != want {
		t.Fatalf("issue count = %d, want %d: %v", got, want, result.Issues)
	}
	if result.Issues[0].ItemIndex != 1 || result.Issues[1].ItemIndex != 3 {
		t.Errorf("issues out of index order: %v", result.Issues)
	}
}

func TestValidateIdempotent(t *testing.T) {
	c := content.New().
		Add(content.KindBar, content.WithParam("x_var", "age_grup")).
		Add(content.KindStackedBar)

	opts := Options{Columns: NewColumnSet("age_group")}
	first, err := Validate(c.Items(), opts)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	second, err := Validate(c.Items(), opts)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}

	if !reflect.DeepEqual(first.Issues, second.Issues) {
		t.Errorf("repeated validation diverged:\n%v\nvs\n%v", first.Issues, second.Issues)
	}
}

func TestValidateEmptyKindIsContractViolation(t *testing.T) {
	items := []content.Item{{Index: 1}}
	_, err := Validate(items, Options{})
	if err == nil {
		t.Fatal("empty kind should error in any mode")
	}
	if !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("error code = %v, want INVALID_KIND", errors.GetCode(err))
	}
}

func TestValidateSentinelHasNoRequirements(t *testing.T) {
	c := content.New().AddPageBreak()
	result, err := Validate(c.Items(), Options{Columns: NewColumnSet("a")})
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !result.OK() {
		t.Errorf("pagination sentinel flagged: %v", result.Issues)
	}
}
