package execution

// judge0SubmissionPath is the synchronous submission endpoint, the response
// only returns once the submission has finished executing.
const judge0SubmissionPath = "/submissions?base64_encoded=false&wait=true"

type judge0Request struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
}

func newJudge0Request(request *Request) judge0Request {
	return judge0Request{
		LanguageID: request.LanguageID,
		SourceCode: request.SourceCode,
	}
}

func extractJudge0(result *Result) {
	result.Stdout = lookupString(result.RawPayload, "stdout")
	result.Stderr = lookupString(result.RawPayload, "stderr")
	result.Status = lookupString(result.RawPayload, "status", "description")
}

// judge0ErrorMessage returns the message of a response in which Judge0 refused
// the submission, e.g. {"error": "..."}.
func judge0ErrorMessage(payload any) *string {
	return lookupString(payload, "error")
}
