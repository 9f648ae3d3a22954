package bunch_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBunch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bunch Suite")
}
