// Package transform holds pipeline steps that run outside the process.
// A Remote step forwards the plane to another mungebits Predictor service
// and writes the returned columns back.
package transform
