package generation

import "github.com/thiago-r-goveia/promptgen/internal/models"

// Responder produces the response slot for a row once its prompt is built.
// A classifier client plugs in here; until then PlaceholderResponder marks
// every row as pending.
type Responder interface {
	Respond(record models.Record, prompt string) models.Response
}

type ResponderFunc func(record models.Record, prompt string) models.Response

func (f ResponderFunc) Respond(record models.Record, prompt string) models.Response {
	return f(record, prompt)
}

var PlaceholderResponder Responder = ResponderFunc(func(record models.Record, _ string) models.Response {
	return models.PendingResponse(record.Index)
})
