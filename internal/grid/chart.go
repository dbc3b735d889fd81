package grid

// ChartOption builds the ECharts option for the allocation donut.
func ChartOption(s State) map[string]any {
	shares := Breakdown(s)
	data := make([]map[string]any, len(shares))
	for i, sh := range shares {
		data[i] = map[string]any{"name": DisplayName(sh.Name), "value": sh.Value}
	}

	return map[string]any{
		"tooltip": map[string]any{"trigger": "item"},
		"legend": map[string]any{
			"top":       "5%",
			"left":      "center",
			"textStyle": map[string]any{"color": "#ccc"},
		},
		"series": []map[string]any{{
			"name":              "Allocation",
			"type":              "pie",
			"radius":            []string{"40%", "70%"},
			"avoidLabelOverlap": false,
			"label":             map[string]any{"show": false, "position": "center"},
			"emphasis": map[string]any{
				"label": map[string]any{"show": true, "fontSize": 40, "fontWeight": "bold"},
			},
			"labelLine": map[string]any{"show": false},
			"data":      data,
		}},
	}
}

// DisplayName capitalizes the first letter of a label for the legend and palette.
func DisplayName(label string) string {
	if label == "" {
		return label
	}
	b := []byte(label)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
