// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrictest reads gathered metric values in tests.
package metrictest

import (
	"errors"
	"fmt"

	"github.com/luxfi/metric"
)

var ErrNotFound = errors.New("metric not found")

// Value returns the value of the series of the named family whose labels
// include every label in labels.
func Value(gatherer metric.Gatherer, name string, labels metric.Labels) (float64, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return 0, err
	}
	for _, family := range families {
		if family.Name != name {
			continue
		}
		for _, m := range family.Metrics {
			if matches(m.Labels, labels) {
				return m.Value.Value, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s%v", ErrNotFound, name, labels)
}

// Count returns the number of series of the named family.
func Count(gatherer metric.Gatherer, name string) (int, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return 0, err
	}
	for _, family := range families {
		if family.Name == name {
			return len(family.Metrics), nil
		}
	}
	return 0, nil
}

func matches(pairs []metric.LabelPair, labels metric.Labels) bool {
	for name, value := range labels {
		found := false
		for _, pair := range pairs {
			if pair.Name == name && pair.Value == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
