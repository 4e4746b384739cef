// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package inspect

// ErrorResponse is the error body returned by the inspect API.
type ErrorResponse struct {
	ErrorType    string `json:"errorType"`
	ErrorMessage string `json:"errorMessage"`
}

// StatusResponse is the success body returned by inspect API actions.
type StatusResponse struct {
	Status string `json:"status"`
}
