/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analysis

// DefaultGuidance returns conservative, non-prescriptive lifestyle guidance
// per parameter.
func DefaultGuidance() map[Parameter]Guidance {
	return map[Parameter]Guidance{
		ParamGlucose: {
			Care:  []string{"Monitor carbohydrate intake", "Maintain regular meal timing", "Stay physically active"},
			Avoid: []string{"Excessive sugar and refined carbs", "Prolonged fasting or irregular meals", "Sedentary lifestyle"},
		},
		ParamCholesterol: {
			Care:  []string{"Include fiber-rich foods", "Choose healthy fats (olive oil, nuts)", "Regular exercise"},
			Avoid: []string{"Trans fats and excessive saturated fats", "Smoking", "Excessive alcohol"},
		},
		ParamBloodPressure: {
			Care:  []string{"Reduce sodium intake", "Manage stress", "Regular cardiovascular exercise"},
			Avoid: []string{"Excessive salt", "Chronic stress", "Excessive caffeine"},
		},
	}
}
