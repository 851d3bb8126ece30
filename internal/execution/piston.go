package execution

const pistonExecutePath = "/api/v2/piston/execute"

type pistonFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
}

func newPistonRequest(request *Request) pistonRequest {
	return pistonRequest{
		Language: request.Language,
		Version:  request.version(),
		Files: []pistonFile{{
			Name:    request.fileName(),
			Content: request.SourceCode,
		}},
	}
}

func extractPiston(result *Result) {
	result.Stdout = lookupString(result.RawPayload, "run", "stdout")
	result.Stderr = lookupString(result.RawPayload, "run", "stderr")
	result.Status = lookupString(result.RawPayload, "run", "status")
}

// pistonErrorMessage returns the message of a response in which Piston refused
// the execution, e.g. {"message": "python-9 runtime is unknown"}.
func pistonErrorMessage(payload any) *string {
	return lookupString(payload, "message")
}
