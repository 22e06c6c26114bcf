package mungebit_test

import (
	"fmt"

	"mungebits/column"
	"mungebits/mungebit"
	"mungebits/plane"
)

func ExampleParse() {
	// Train learns the column mean, predict fills missing cells with it.
	train := column.Transformation(func(values []any, in *mungebit.Inputs, _ ...any) ([]any, error) {
		var sum float64
		for _, v := range values {
			sum += v.(float64)
		}
		in.Set("mean", sum/float64(len(values)))
		return values, nil
	})
	predict := column.Transformation(func(values []any, in *mungebit.Inputs, _ ...any) ([]any, error) {
		m, _ := in.Float("mean")
		out := make([]any, len(values))
		for i, v := range values {
			if v == nil {
				v = m
			}
			out[i] = v
		}
		return out, nil
	})

	piece, err := mungebit.Parse([]any{[]any{train, predict}, "age"})
	if err != nil {
		fmt.Println(err)
		return
	}

	_, _ = piece.Run(plane.FromRecords([]map[string]any{{"age": 20.0}, {"age": 40.0}}))
	out, _ := piece.Run(plane.FromRecords([]map[string]any{{"age": nil}}))
	age, _ := out.Column("age")
	fmt.Println(age)
	// Output: [30]
}
