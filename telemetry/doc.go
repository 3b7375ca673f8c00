// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package telemetry provides a way to capture telemetry data during a body read.
//
// The package provides a struct type [Data] that holds all telemetry data of a read.
package telemetry
