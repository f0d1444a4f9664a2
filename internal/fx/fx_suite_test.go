package fx

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFx(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "fx lifecycle suite")
}
