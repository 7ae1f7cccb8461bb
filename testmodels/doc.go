// Package testmodels holds entities shared by the package tests.
package testmodels
