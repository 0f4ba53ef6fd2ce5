package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sciedu_backend/internals/constants"
)

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestValidatePayloadMultipleChoice(t *testing.T) {
	opts := []string{"Mitokondria", "Ribosom", "Lisosom"}

	require.Nil(t, ValidatePayload(constants.QuestionMultipleChoice, opts, raw(`"Ribosom"`), nil))

	errs := ValidatePayload(constants.QuestionMultipleChoice, opts, raw(`"Nukleus"`), nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs["correct_answer"], "not_in_options")

	errs = ValidatePayload(constants.QuestionMultipleChoice, []string{"A"}, raw(`"A"`), nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs["options"], "min_2_options")

	errs = ValidatePayload(constants.QuestionMultipleChoice, opts, raw(`42`), nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs["correct_answer"], "must_be_string")
}

func TestValidatePayloadTrueFalse(t *testing.T) {
	require.Nil(t, ValidatePayload(constants.QuestionTrueFalse, nil, raw(`true`), nil))
	require.Nil(t, ValidatePayload(constants.QuestionTrueFalse, nil, raw(`false`), nil))

	errs := ValidatePayload(constants.QuestionTrueFalse, nil, raw(`"benar"`), nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs["correct_answer"], "must_be_boolean")
}

func TestValidatePayloadCalculation(t *testing.T) {
	require.Nil(t, ValidatePayload(constants.QuestionCalculation, nil, raw(`9.81`), nil))

	errs := ValidatePayload(constants.QuestionCalculation, nil, raw(`"sembilan"`), nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs["correct_answer"], "must_be_number")

	errs = ValidatePayload(constants.QuestionCalculation, nil, nil, nil)
	require.NotNil(t, errs)
}

func TestValidatePayloadEquation(t *testing.T) {
	require.Nil(t, ValidatePayload(constants.QuestionEquation, nil, raw(`"2H2 + O2 -> 2H2O"`), nil))

	errs := ValidatePayload(constants.QuestionEquation, nil, raw(`""`), nil)
	require.NotNil(t, errs)
}

func TestValidatePayloadDiagram(t *testing.T) {
	require.Nil(t, ValidatePayload(constants.QuestionDiagram, nil, nil, raw(`{"nodes":[],"edges":[]}`)))

	errs := ValidatePayload(constants.QuestionDiagram, nil, nil, nil)
	require.NotNil(t, errs)
	assert.Contains(t, errs["diagram_data"], "required")
}

func TestValidatePayloadEssayHasNoConstraints(t *testing.T) {
	require.Nil(t, ValidatePayload(constants.QuestionEssay, nil, nil, nil))
}
