package fibonacci

import (
	"context"
	"fmt"
)

// ExampleNewCalculator demonstrates wrapping core algorithms.
func ExampleNewCalculator() {
	rec := NewCalculator(&RecursiveCalculator{})
	iter := NewCalculator(&IterativeCalculator{})
	bigCalc := NewCalculator(&BigIterativeCalculator{})

	fmt.Println(rec.Name())
	fmt.Println(iter.Name())
	fmt.Println(bigCalc.Name())
	// Output:
	// Recursive (naive, O(φⁿ))
	// Iterative (O(n), uint64)
	// Iterative (O(n), math/big)
}

// ExampleDefaultFactory demonstrates looking calculators up by name.
func ExampleDefaultFactory() {
	factory := NewDefaultFactory()

	calc, err := factory.Get("iterative")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result, err := calc.Calculate(context.Background(), nil, 0, 10, Options{})
	if err != nil {
		fmt.Printf("Calculation error: %v\n", err)
		return
	}
	fmt.Println(result)
	// Output:
	// 55
}

// ExampleFibCalculator_CalculateWithObservers demonstrates observer-based
// progress tracking.
func ExampleFibCalculator_CalculateWithObservers() {
	calc := NewCalculator(&BigIterativeCalculator{}).(*FibCalculator)

	subject := NewProgressSubject()
	progressChan := make(chan ProgressUpdate, 256)
	subject.Register(NewChannelObserver(progressChan))

	result, err := calc.CalculateWithObservers(context.Background(), subject, 0, 100, Options{})
	close(progressChan)
	if err != nil {
		fmt.Println(err)
		return
	}

	var last float64
	for u := range progressChan {
		last = u.Value
	}
	fmt.Println(result)
	fmt.Println(last)
	// Output:
	// 354224848179261915075
	// 1
}
