// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"os"
	"strconv"
)

// builtinTest implements "test args..." and "[ args... ]" (POSIX XCU
// test): unlike the teacher's bashTest, which walked an already-parsed
// TestExpr tree handed to it by the parser, this builtin receives a plain
// argv and has to recognize the small test grammar itself, since nothing
// upstream of the builtin dispatch knows "[" needs a matching "]" trimmed
// or that "test" takes no such bracket.
func builtinTest(e *Env, args []string) (int, Divert) {
	return testStatus(evalTest(args)), Divert{}
}

func builtinBracket(e *Env, args []string) (int, Divert) {
	if len(args) == 0 || args[len(args)-1] != "]" {
		return 2, Divert{}
	}
	return testStatus(evalTest(args[:len(args)-1])), Divert{}
}

func testStatus(ok bool) int {
	if ok {
		return 0
	}
	return 1
}

// evalTest implements the POSIX argument-count cases for test(1); beyond
// four arguments the standard leaves behavior unspecified, so like most
// shells we just give up and report false.
func evalTest(args []string) bool {
	switch len(args) {
	case 0:
		return false
	case 1:
		return args[0] != ""
	case 2:
		if args[0] == "!" {
			return !evalTest(args[1:])
		}
		return unaryTest(args[0], args[1])
	case 3:
		if args[0] == "!" {
			return !evalTest(args[1:])
		}
		if args[0] == "(" && args[2] == ")" {
			return evalTest(args[1:2])
		}
		return binaryTest(args[1], args[0], args[2])
	case 4:
		if args[0] == "!" {
			return !evalTest(args[1:])
		}
		if args[0] == "(" && args[3] == ")" {
			return evalTest(args[1:3])
		}
	}
	return false
}

func unaryTest(op, x string) bool {
	switch op {
	case "-z":
		return x == ""
	case "-n":
		return x != ""
	case "-e":
		return stat(x) != nil
	case "-f":
		info := stat(x)
		return info != nil && info.Mode().IsRegular()
	case "-d":
		return statMode(x, os.ModeDir)
	case "-p":
		return statMode(x, os.ModeNamedPipe)
	case "-S":
		return statMode(x, os.ModeSocket)
	case "-L", "-h":
		return statMode(x, os.ModeSymlink)
	case "-k":
		return statMode(x, os.ModeSticky)
	case "-g":
		return statMode(x, os.ModeSetgid)
	case "-u":
		return statMode(x, os.ModeSetuid)
	case "-s":
		info := stat(x)
		return info != nil && info.Size() > 0
	case "-r":
		return statPerm(x, 0o444)
	case "-w":
		return statPerm(x, 0o222)
	case "-x":
		return statPerm(x, 0o111)
	default:
		return false
	}
}

func binaryTest(op, x, y string) bool {
	switch op {
	case "-nt":
		i1, i2 := stat(x), stat(y)
		if i1 == nil || i2 == nil {
			return false
		}
		return i1.ModTime().After(i2.ModTime())
	case "-ot":
		i1, i2 := stat(x), stat(y)
		if i1 == nil || i2 == nil {
			return false
		}
		return i1.ModTime().Before(i2.ModTime())
	case "-eq":
		return atoiTest(x) == atoiTest(y)
	case "-ne":
		return atoiTest(x) != atoiTest(y)
	case "-le":
		return atoiTest(x) <= atoiTest(y)
	case "-ge":
		return atoiTest(x) >= atoiTest(y)
	case "-lt":
		return atoiTest(x) < atoiTest(y)
	case "-gt":
		return atoiTest(x) > atoiTest(y)
	case "=", "==":
		return x == y
	case "!=":
		return x != y
	default:
		return false
	}
}

func atoiTest(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func stat(name string) os.FileInfo {
	info, _ := os.Stat(name)
	return info
}

func statMode(name string, mode os.FileMode) bool {
	info := stat(name)
	return info != nil && info.Mode()&mode != 0
}

func statPerm(name string, bit os.FileMode) bool {
	info := stat(name)
	return info != nil && info.Mode().Perm()&bit != 0
}
