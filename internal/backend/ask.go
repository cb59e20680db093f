package backend

import "net/http"

type askRequest struct {
	Question   string `json:"question"`
	DocumentID string `json:"document_id"`
}

// Ask sends a question about a document to the answering endpoint.
func (c *Client) Ask(token, documentID, question string) (string, error) {
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := c.doJSON(http.MethodPost, "/api/ask", token, askRequest{Question: question, DocumentID: documentID}, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
