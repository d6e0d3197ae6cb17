// Package gateway defines the parameter model of the cryptographic gateway: the closed set of
// algorithm variants, the parameter set that configures one operation, the stable error taxonomy
// and the service contracts implemented by the application layer.
package gateway
